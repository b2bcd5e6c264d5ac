package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/devicekit/pkg/device"
	"github.com/dmitrymomot/devicekit/pkg/mobiledetect"
	"github.com/dmitrymomot/devicekit/pkg/negotiate"
)

// classification describes how a client would be served.
type classification struct {
	Device    string
	Category  string
	JSEnabled bool
	Format    string
}

func classify(userAgent, accept string) classification {
	req := &http.Request{Method: http.MethodGet, Header: make(http.Header)}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	header := mobiledetect.New().Detect(req)

	format, _ := negotiate.Decide(negotiate.Input{UserAgent: userAgent, DeviceHeader: header}, negotiate.Preferences{})
	return classification{
		Device:    header,
		Category:  device.Classify(userAgent, header).String(),
		JSEnabled: device.IsJSEnabledMobile(userAgent),
		Format:    format.String(),
	}
}

func newClassifyCmd() *cobra.Command {
	var accept string

	cmd := &cobra.Command{
		Use:   "classify <user-agent>",
		Short: "Show the device category and format a user agent negotiates to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := classify(args[0], accept)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "device: %q\ncategory: %s\njs_enabled: %t\nformat: %s\n",
				c.Device, c.Category, c.JSEnabled, c.Format)
			return err
		},
	}
	cmd.Flags().StringVar(&accept, "accept", "", "Accept header sent by the client")
	return cmd
}
