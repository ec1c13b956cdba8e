package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/weave/pkg/config"
)

type resolvedView struct {
	Root       string  `yaml:"root,omitempty"`
	ModulePath string  `yaml:"module,omitempty"`
	AppName    string  `yaml:"name"`
	AppID      string  `yaml:"id"`
	Debug      bool    `yaml:"debug"`
	Scale      float32 `yaml:"scale_factor"`
	Width      int32   `yaml:"viewport_width_px"`
	Height     int32   `yaml:"viewport_height_px"`
	FontSize   int32   `yaml:"font_size_px"`
	ScreenPPI  float32 `yaml:"screen_ppi"`
	Direction  string  `yaml:"direction"`
}

func configCmd(resolve func() (*config.Resolved, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration of the project, with every value weave.yaml
leaves out resolved to its default.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolve()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(resolvedView{
				Root:       r.Root,
				ModulePath: r.ModulePath,
				AppName:    r.AppName,
				AppID:      r.AppID,
				Debug:      r.Debug,
				Scale:      float32(r.ScaleFactor),
				Width:      int32(r.Viewport.Width),
				Height:     int32(r.Viewport.Height),
				FontSize:   int32(r.FontSize),
				ScreenPPI:  float32(r.ScreenPPI),
				Direction:  r.Direction.String(),
			})
		},
	}
}
