package sheetschema

import "strings"

// SampleTables returns a small dataset for non-production boots without
// spreadsheet credentials.
func SampleTables() map[string][][]string {
	campaignHeaders := append(append([]string(nil), Campaigns.Columns...), Password, SurveyPrefix+"address", SurveyPrefix+"bank_account")
	reserved := make([]string, len(campaignHeaders))
	reserved[0] = "reserved"

	campaignRow := func(values map[string]string) []string {
		row := make([]string, len(campaignHeaders))
		for i, header := range campaignHeaders {
			row[i] = values[header]
		}
		return row
	}

	return map[string][][]string{
		CampaignsSheet: {
			campaignHeaders,
			reserved,
			reserved,
			reserved,
			campaignRow(map[string]string{
				CampaignID:     "CMP-001",
				InfluencerID:   "INF-001",
				InfluencerName: "Sakura Tanaka",
				ContactEmail:   "sakura@example.com",
				CampaignTitle:  "Spring skincare launch",
				ProductName:    "Hydra Mist",
				Status:         "plan_creating",
				Platform:       "YouTube",
				Spend:          "¥120,000",
				DateMeeting:    "2026-03-02",
				DatePlan:       "2026-03-10",
				DateDraft:      "2026-03-24",
				DateLive:       "2026-04-05",
				Requirements:   strings.Join([]string{"Show the product in the first 30 seconds", "", "Mention the campaign hashtag"}, "\n"),
				ReferenceLinks: "https://example.com/brief",
				Password:       "sample-pass",
			}),
			campaignRow(map[string]string{
				CampaignID:     "CMP-002",
				InfluencerID:   "INF-002",
				InfluencerName: "Ren Kobayashi",
				ContactEmail:   "ren@example.com",
				CampaignTitle:  "Summer drink promo",
				ProductName:    "Citrus Fizz",
				Status:         "draft_submitted",
				Platform:       "yts",
				Spend:          "¥50,000",
				DatePlan:       "2026-02-20",
				DateDraft:      "2026-03-01",
				DateLive:       "2026-03-15",
				URLPlan:        "https://docs.example.com/plan-002",
				URLDraft:       "https://youtu.be/draft002",
				MessageLog:     `[{"type":"revision_feedback","content":"Brighter lighting please","timestamp":"2026-02-25T10:00:00+09:00"}]`,
				Password:       "sample-pass",
			}),
			campaignRow(map[string]string{
				CampaignID:     "CMP-001",
				InfluencerID:   "INF-003",
				InfluencerName: "Aoi Suzuki",
				ContactEmail:   "aoi@example.com",
				CampaignTitle:  "Spring skincare launch",
				ProductName:    "Hydra Mist",
				Status:         "",
				Platform:       "Instagram Reels",
				Spend:          "TBD",
				Password:       "sample-pass",
			}),
		},
		SelectedSheet: {
			Selected.Columns,
			{"INF-101", "Haruto Ito", "haruto.tv", "haruto@example.com", "tt", "Musubime Team", "", "", ""},
			{"INF-102", "Yui Yamamoto", "yui_beauty", "yui@example.com", "ig", "Musubime Team", "yes", "contacted", "2026-01-20"},
		},
		TemplatesSheet: {
			Templates.Columns,
			{
				"TPL-001",
				"TikTok first contact",
				`[{"field":"platform","operator":"equals","value":"tt"},{"field":"status","operator":"empty","value":""}]`,
				"{{name_display}}さん PR のご相談",
				"{{name_influencer}} 様\n\n{{sender}} です。TikTok でのタイアップについてご相談させてください。",
			},
			{
				"TPL-002",
				"Generic first contact",
				`[]`,
				"PR collaboration for {{name_display}}",
				"Hi {{name_influencer}},\n\nThis is {{sender}}. We would love to work with you.",
			},
		},
	}
}
