package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pedagogy-studio/internal/setup"
)

func newMCPCmd(c *cli) *cobra.Command {
	var configPath, name string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Register the MCP server with a desktop client",
		Long: `Register mcp-server-lite with a desktop MCP client by editing the
client's mcpServers config file. Other entries are left untouched.

Examples:
  pedagogy mcp install
  pedagogy mcp install --binary ~/go/bin/mcp-server-lite --backend http://gen:8000
  pedagogy mcp status`,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Client config file (defaults to the desktop client's)")
	cmd.PersistentFlags().StringVar(&name, "name", setup.DefaultServerName, "Server name in the client config")

	resolve := func() (string, error) {
		if configPath != "" {
			return configPath, nil
		}
		return setup.DefaultConfigPath()
	}

	var binary string
	install := &cobra.Command{
		Use:   "install",
		Short: "Add or update the server entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolve()
			if err != nil {
				return err
			}
			entry, err := setup.Register(path, setup.Options{
				Name:       name,
				BinaryPath: binary,
				BackendURL: c.backendURL,
				DataDir:    c.dataDir,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s) in %s\n", name, entry.Command, path)
			return nil
		},
	}
	install.Flags().StringVar(&binary, "binary", "", "Path to mcp-server-lite (searched for when empty)")

	uninstall := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the server entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolve()
			if err != nil {
				return err
			}
			removed, err := setup.Unregister(path, name)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s was not registered\n", name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", name, path)
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether the server is registered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolve()
			if err != nil {
				return err
			}
			st, err := setup.Inspect(path, name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ok, err := c.emit(out, st); ok {
				return err
			}
			fmt.Fprintf(out, "Config:     %s\n", st.ConfigPath)
			fmt.Fprintf(out, "Registered: %t\n", st.Registered)
			if st.Registered {
				fmt.Fprintf(out, "Command:    %s\n", st.Entry.Command)
			}
			for _, issue := range st.Issues {
				fmt.Fprintf(out, "  ! %s\n", issue)
			}
			return nil
		},
	}

	cmd.AddCommand(install, uninstall, status)
	return cmd
}
