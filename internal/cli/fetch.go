package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-print"
	"github.com/spf13/cobra"

	jobtrack "github.com/dan-yates1/job-tracker"
)

func newFetchCmd(app *App) *cobra.Command {
	var (
		method  string
		headers []string
		data    string
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Send an authorized request and print the response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []jobtrack.FetchOption{jobtrack.WithMethod(method)}

			parsed, err := parseHeaders(headers)
			if err != nil {
				return err
			}
			opts = append(opts, jobtrack.WithHeaders(parsed))

			if data != "" {
				opts = append(opts, jobtrack.WithBody(strings.NewReader(data)))
			}

			res, err := app.jobtrack.Client().Fetch(cmd.Context(), args[0], opts...)
			if err != nil {
				if jobtrack.IsAuthExpired(err) {
					// the navigator already told the user what to do
					return nil
				}
				return err
			}
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Status)
			fmt.Fprintln(out, renderBody(body))
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "request", "X", "GET", "HTTP method")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "extra header, \"Name: value\"")
	cmd.Flags().StringVarP(&data, "data", "d", "", "request body")
	return cmd
}

func parseHeaders(raw []string) (map[string]string, error) {
	headers := map[string]string{}
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q, expected \"Name: value\"", h)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers, nil
}

func renderBody(body []byte) string {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return string(body)
	}
	return print.MaybePrettyJSON(payload)
}
