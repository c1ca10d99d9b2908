package main

import (
	"fmt"

	outreachports "musubime/contexts/outreach/outreach-service/ports"
	outreachhttp "musubime/contexts/outreach/outreach-service/transport/http"
	"musubime/internal/app/bootstrap"

	"github.com/spf13/cobra"
)

var (
	previewTemplate   string
	previewInfluencer string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Work with outreach templates",
}

var templatesPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a template against one candidate row",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(app *bootstrap.CLIApp) error {
			resp, err := app.Outreach().Handler.PreviewHandler(
				cmd.Context(),
				outreachports.Actor{ID: operatorID, Role: outreachports.RoleAdmin},
				outreachhttp.PreviewRequest{TemplateID: previewTemplate, InfluencerID: previewInfluencer},
			)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n\n%s\n", resp.Subject, resp.Body)
			return err
		})
	},
}

func init() {
	templatesPreviewCmd.Flags().StringVar(&previewTemplate, "template", "", "Template id")
	templatesPreviewCmd.Flags().StringVar(&previewInfluencer, "influencer", "", "Candidate influencer id")
	_ = templatesPreviewCmd.MarkFlagRequired("template")

	templatesCmd.AddCommand(templatesPreviewCmd)
	rootCmd.AddCommand(templatesCmd)
}
