package entities

import "strings"

type Platform string

const (
	PlatformYouTube        Platform = "yt"
	PlatformYouTubeShorts  Platform = "yts"
	PlatformTikTok         Platform = "tt"
	PlatformInstagram      Platform = "ig"
	PlatformInstagramReels Platform = "igr"
	PlatformInstagramStory Platform = "igs"
	PlatformX              Platform = "x"
	PlatformFacebook       Platform = "fb"
	PlatformThreads        Platform = "th"
	PlatformBlog           Platform = "bl"
)

var platformAliases = map[string]Platform{
	"youtube":           PlatformYouTube,
	"youtube shorts":    PlatformYouTubeShorts,
	"shorts":            PlatformYouTubeShorts,
	"tiktok":            PlatformTikTok,
	"instagram":         PlatformInstagram,
	"instagram reels":   PlatformInstagramReels,
	"reels":             PlatformInstagramReels,
	"instagram story":   PlatformInstagramStory,
	"instagram stories": PlatformInstagramStory,
	"stories":           PlatformInstagramStory,
	"twitter":           PlatformX,
	"facebook":          PlatformFacebook,
	"threads":           PlatformThreads,
	"blog":              PlatformBlog,
	"note":              PlatformBlog,
}

func AllPlatforms() []Platform {
	return []Platform{
		PlatformYouTube, PlatformYouTubeShorts, PlatformTikTok, PlatformInstagram,
		PlatformInstagramReels, PlatformInstagramStory, PlatformX, PlatformFacebook,
		PlatformThreads, PlatformBlog,
	}
}

// ParsePlatform maps a free-form cell to a platform code; unknown values read as yt.
func ParsePlatform(raw string) Platform {
	value := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	for _, platform := range AllPlatforms() {
		if Platform(value) == platform {
			return platform
		}
	}
	if platform, ok := platformAliases[value]; ok {
		return platform
	}
	return PlatformYouTube
}

func (p Platform) Label() string {
	switch p {
	case PlatformYouTubeShorts:
		return "YouTube Shorts"
	case PlatformTikTok:
		return "TikTok"
	case PlatformInstagram:
		return "Instagram"
	case PlatformInstagramReels:
		return "Instagram Reels"
	case PlatformInstagramStory:
		return "Instagram Stories"
	case PlatformX:
		return "X"
	case PlatformFacebook:
		return "Facebook"
	case PlatformThreads:
		return "Threads"
	case PlatformBlog:
		return "Blog"
	default:
		return "YouTube"
	}
}
