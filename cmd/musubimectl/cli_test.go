package main

import (
	"bytes"
	"strings"
	"testing"

	campaignhttp "musubime/contexts/campaign-workflow/campaign-service/transport/http"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("correct horse\n"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"hash-password"})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("hash-password failed: %v", err)
	}
	hash := strings.TrimSpace(out.String())
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")); err != nil {
		t.Fatalf("printed hash does not verify: %v", err)
	}
}

func TestHashPasswordRejectsEmptyInput(t *testing.T) {
	rootCmd.SetIn(strings.NewReader("\n"))
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"hash-password"})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected an error for an empty password")
	}
}

func TestWriteCampaignTable(t *testing.T) {
	var out bytes.Buffer
	err := writeCampaignTable(&out, []campaignhttp.CampaignDTO{
		{CampaignID: "CMP-001", InfluencerID: "INF-001", Status: "plan_creating", Step: "plan", Platform: "yt"},
	})
	if err != nil {
		t.Fatalf("write table: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "CAMPAIGN") {
		t.Fatalf("unexpected table %q", out.String())
	}
	if fields := strings.Fields(lines[1]); len(fields) != 5 || fields[2] != "plan_creating" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}
