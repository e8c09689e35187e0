package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/natserract/icontact/pkg/icontact"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// maxConcurrentGets keeps a batch well under the 60 calls per 60 seconds quota
const maxConcurrentGets = 5

type clientFactory func() (icontact.Client, error)

// parseTarget splits "resource/id/id" into the resource name and its ids
func parseTarget(target string) (string, []string, error) {
	parts := strings.Split(strings.Trim(target, "/"), "/")
	if parts[0] == "" {
		return "", nil, fmt.Errorf("invalid target %q", target)
	}
	if len(parts) > 3 {
		return "", nil, fmt.Errorf("invalid target %q: at most two ids are supported", target)
	}
	return parts[0], parts[1:], nil
}

// parseParams turns key=value pairs and an optional JSON object into Params.
// Pairs override keys from the JSON object.
func parseParams(pairs []string, data string) (icontact.Params, error) {
	params := icontact.Params{}
	if data != "" {
		if err := json.Unmarshal([]byte(data), &params); err != nil {
			return nil, fmt.Errorf("--data must be a JSON object: %w", err)
		}
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

func callOptions(verbose bool) []icontact.CallOption {
	if verbose {
		return []icontact.CallOption{icontact.WithVerbose()}
	}
	return nil
}

func printJSON(w io.Writer, target string, payload interface{}) error {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: failed to format response: %w", target, err)
	}
	_, err = fmt.Fprintf(w, "# %s\n%s\n", target, b)
	return err
}

func newGetCommand(clientFor clientFactory, verbose *bool, logger *zap.Logger) *cobra.Command {
	var pairs []string

	cmd := &cobra.Command{
		Use:   "get <target>...",
		Short: "Fetch one or more resources concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(pairs, "")
			if err != nil {
				return err
			}

			type target struct {
				raw      string
				resource string
				ids      []string
			}
			targets := make([]target, 0, len(args))
			for _, arg := range args {
				resource, ids, err := parseTarget(arg)
				if err != nil {
					return err
				}
				targets = append(targets, target{raw: arg, resource: resource, ids: ids})
			}

			client, err := clientFor()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			results := make([]interface{}, len(targets))
			succeeded := make([]bool, len(targets))
			p := pool.New().WithMaxGoroutines(maxConcurrentGets).WithErrors()
			for idx, t := range targets {
				idx, t := idx, t
				p.Go(func() error {
					payload, err := client.Get(ctx, t.resource, t.ids, params, callOptions(*verbose)...)
					if err != nil {
						logger.Error("Failed to get resource",
							zap.String("target", t.raw),
							zap.Error(err))
						return fmt.Errorf("%s: %w", t.raw, err)
					}
					results[idx] = payload
					succeeded[idx] = true
					return nil
				})
			}
			poolErr := p.Wait()

			for idx, t := range targets {
				if !succeeded[idx] {
					continue
				}
				if err := printJSON(cmd.OutOrStdout(), t.raw, results[idx]); err != nil {
					return err
				}
			}
			return poolErr
		},
	}
	cmd.Flags().StringArrayVarP(&pairs, "param", "p", nil, "query parameter as key=value (repeatable)")
	return cmd
}

func newWriteCommand(verb string, clientFor clientFactory, verbose *bool) *cobra.Command {
	var (
		pairs []string
		data  string
	)

	cmd := &cobra.Command{
		Use:   verb + " <target>",
		Short: strings.ToUpper(verb) + " to a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, ids, err := parseTarget(args[0])
			if err != nil {
				return err
			}
			params, err := parseParams(pairs, data)
			if err != nil {
				return err
			}

			client, err := clientFor()
			if err != nil {
				return err
			}

			call := client.Post
			switch verb {
			case "put":
				call = client.Put
			case "delete":
				call = client.Delete
			}

			payload, err := call(cmd.Context(), resource, ids, params, callOptions(*verbose)...)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), args[0], payload)
		},
	}
	if verb != "delete" {
		cmd.Flags().StringArrayVarP(&pairs, "param", "p", nil, "body field as key=value (repeatable)")
		cmd.Flags().StringVarP(&data, "data", "d", "", "request body as a JSON object")
	}
	return cmd
}
