package sheetsadapter

import (
	"context"
	"testing"

	"musubime/internal/platform/rowstore"
	"musubime/internal/shared/sheetschema"
)

func TestSnapshotReadsCampaignRow(t *testing.T) {
	client := rowstore.NewMemoryClient("sheet-test", rowstore.AccessReadOnly, sheetschema.SampleTables())
	campaigns := CampaignContext{Store: rowstore.New(client, rowstore.Options{Schemas: sheetschema.All()})}

	snapshot, found, err := campaigns.Snapshot(context.Background(), "CMP-001", "INF-003")
	if err != nil || !found {
		t.Fatalf("expected snapshot, got found=%v err=%v", found, err)
	}
	if snapshot.InfluencerName != "Aoi Suzuki" || snapshot.Product != "Hydra Mist" {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}

	if _, found, _ := campaigns.Snapshot(context.Background(), "CMP-002", "INF-003"); found {
		t.Fatalf("expected no snapshot for a campaign the influencer is not on")
	}
}
