package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	campaignports "musubime/contexts/campaign-workflow/campaign-service/ports"
	campaignhttp "musubime/contexts/campaign-workflow/campaign-service/transport/http"
	"musubime/internal/app/bootstrap"

	"github.com/spf13/cobra"
)

var (
	listInfluencer string
	listRefresh    bool

	statusCampaign   string
	statusInfluencer string
	statusValue      string
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Inspect and update campaign rows",
}

var campaignsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaign rows with their status and step",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(app *bootstrap.CLIApp) error {
			resp, err := app.Campaigns().Handler.ListCampaignsHandler(cmd.Context(), adminActor(), listInfluencer, listRefresh)
			if err != nil {
				return err
			}
			return writeCampaignTable(cmd.OutOrStdout(), resp.Campaigns)
		})
	},
}

var campaignsSetStatusCmd = &cobra.Command{
	Use:   "set-status",
	Short: "Set the status of one campaign row",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(app *bootstrap.CLIApp) error {
			resp, err := app.Campaigns().Handler.UpdateStatusHandler(cmd.Context(), adminActor(), campaignhttp.UpdateStatusRequest{
				CampaignID:   statusCampaign,
				InfluencerID: statusInfluencer,
				NewStatus:    statusValue,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s/%s -> %s (%s)\n", statusCampaign, statusInfluencer, resp.Status, resp.Step)
			return err
		})
	},
}

func init() {
	campaignsListCmd.Flags().StringVar(&listInfluencer, "influencer", "", "Only rows of this influencer id")
	campaignsListCmd.Flags().BoolVar(&listRefresh, "refresh", false, "Bypass the read cache")

	campaignsSetStatusCmd.Flags().StringVar(&statusCampaign, "campaign", "", "Campaign id")
	campaignsSetStatusCmd.Flags().StringVar(&statusInfluencer, "influencer", "", "Influencer id")
	campaignsSetStatusCmd.Flags().StringVar(&statusValue, "status", "", "New status, e.g. draft_revising")
	_ = campaignsSetStatusCmd.MarkFlagRequired("campaign")
	_ = campaignsSetStatusCmd.MarkFlagRequired("influencer")
	_ = campaignsSetStatusCmd.MarkFlagRequired("status")

	campaignsCmd.AddCommand(campaignsListCmd, campaignsSetStatusCmd)
	rootCmd.AddCommand(campaignsCmd)
}

func adminActor() campaignports.Actor {
	return campaignports.Actor{ID: operatorID, Role: campaignports.RoleAdmin}
}

func writeCampaignTable(out io.Writer, campaigns []campaignhttp.CampaignDTO) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CAMPAIGN\tINFLUENCER\tSTATUS\tSTEP\tPLATFORM")
	for _, item := range campaigns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", item.CampaignID, item.InfluencerID, item.Status, item.Step, item.Platform)
	}
	return tw.Flush()
}
