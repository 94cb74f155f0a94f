package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type configOutput struct {
	Source  string `json:"source" yaml:"source"`
	Host    string `json:"host" yaml:"host"`
	APIKey  string `json:"apiKey" yaml:"api_key"`
	Timeout string `json:"timeout" yaml:"timeout"`
	Log     struct {
		Level string `json:"level" yaml:"level"`
		File  string `json:"file" yaml:"file"`
	} `json:"log" yaml:"log"`
	Journal struct {
		Path      string `json:"path" yaml:"path"`
		Disabled  bool   `json:"disabled" yaml:"disabled"`
		Retention int    `json:"retention" yaml:"retention"`
	} `json:"journal" yaml:"journal"`
	Poll struct {
		Index  string `json:"index" yaml:"index"`
		Search string `json:"search" yaml:"search"`
	} `json:"poll" yaml:"poll"`
}

// maskKey hides all but the last four characters of an API key
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var out configOutput
		out.Source = cfg.Source
		out.Host = cfg.Host
		out.APIKey = maskKey(cfg.APIKey)
		out.Timeout = cfg.Timeout.String()
		out.Log.Level = cfg.Log.Level
		out.Log.File = cfg.Log.File
		out.Journal.Path = cfg.Journal.Path
		if out.Journal.Path == "" && journal != nil {
			out.Journal.Path = journal.Path()
		}
		out.Journal.Disabled = cfg.Journal.Disabled
		out.Journal.Retention = cfg.Journal.Retention
		out.Poll.Index = cfg.Poll.Index.String()
		out.Poll.Search = cfg.Poll.Search.String()

		return render(out, func(w io.Writer) {
			data, err := yaml.Marshal(out)
			if err != nil {
				fmt.Fprintln(w, err)
				return
			}
			_, _ = w.Write(data)
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
