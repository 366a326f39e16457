package config

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kelseyhightower/envconfig"
)

// PrintUsage 列出每个配置组读取的环境变量、类型与默认值
func PrintUsage(w io.Writer) error {
	groups := []struct {
		title string
		spec  any
	}{
		{"Trading", &TradingParameters{}},
		{"Evolution", &EvolutionaryParameters{}},
		{"Runtime", &RuntimeParameters{}},
	}
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "# %s\n", g.title)
		tw := tabwriter.NewWriter(w, 1, 0, 4, ' ', 0)
		if err := envconfig.Usagef("", g.spec, tw, envconfig.DefaultTableFormat); err != nil {
			return fmt.Errorf("failed to render usage for %s: %w", g.title, err)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
