package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/99minutos/marketplace-system/internal/infrastructure/rpcclient"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

var (
	callAddr    string
	callAPI     string
	callRole    string
	callSession string
	callPayload string
)

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Send one request to a running process and print the response",
	Long: `Send one framed request and print the JSON response.

Examples:
  marketplace call --addr 127.0.0.1:7004 --api CreateAccount --payload '{"seller_name":"Acme","username":"acme","password":"pw"}'
  marketplace call --addr 127.0.0.1:7003 --api DisplayCart --session sess_...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		cfg, _, err := setup(ctx, "cli")
		if err != nil {
			return err
		}

		payload := json.RawMessage(callPayload)
		if !json.Valid(payload) {
			return fmt.Errorf("--payload is not valid JSON")
		}

		c := rpcclient.New(callAddr, cfg.RPCTimeout)
		resp, err := c.Call(ctx, &protocol.Request{
			API:       protocol.API(callAPI),
			Role:      callRole,
			SessionID: callSession,
			Payload:   payload,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().StringVar(&callAddr, "addr", "", "Process address host:port (required)")
	callCmd.Flags().StringVar(&callAPI, "api", "", "API name, e.g. Login (required)")
	callCmd.Flags().StringVar(&callRole, "role", "", "Role for customer_db CreateAccount/Login")
	callCmd.Flags().StringVar(&callSession, "session", "", "Session id placed in the envelope")
	callCmd.Flags().StringVar(&callPayload, "payload", "{}", "JSON payload")
	_ = callCmd.MarkFlagRequired("addr")
	_ = callCmd.MarkFlagRequired("api")
}
