package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardsheet/pkg/layout"
	"github.com/matzehuels/cardsheet/pkg/pipeline"
	"github.com/matzehuels/cardsheet/pkg/render/sink"
)

// generateOpts holds the output flags of the generate command.
type generateOpts struct {
	output string
	format string
	title  string
	dpmm   float64
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts
	var sf settingsFlags

	cmd := &cobra.Command{
		Use:   "generate FRONT [BACK]",
		Short: "Lay out card images on printable pages",
		Long: `Generate lays out every image in FRONT on a grid, page after page.

With --back-mode same, BACK is a single image printed behind every card.
With --back-mode unique, BACK is a directory whose images pair with the
fronts in name order. Each back page follows its front page and uses the
same slot positions.

When BACK is given and no back mode is set, a file selects same and a
directory selects unique.`,
		Example: `  cardsheet generate cards/ -o deck.pdf
  cardsheet generate cards/ back.png -o deck.pdf --paper letter --border
  cardsheet generate cards/ backs/ -o proof.png --dpmm 4`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sf.settings(cmd)
			if err != nil {
				return err
			}
			back := ""
			if len(args) == 2 {
				back = args[1]
				if !cmd.Flags().Changed("back-mode") && s.BackMode == layout.NoBack {
					s.BackMode = inferBackMode(back)
				}
			}
			return c.runGenerate(cmd.Context(), s, args[0], back, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: pdf, png, json (default from extension)")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title")
	cmd.Flags().Float64Var(&opts.dpmm, "dpmm", sink.DefaultPixelsPerMM, "PNG resolution in pixels per mm")
	sf.register(cmd)

	return cmd
}

func inferBackMode(path string) layout.BackMode {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return layout.UniqueBack
	}
	return layout.SameBack
}

func (c *CLI) runGenerate(ctx context.Context, s layout.Settings, front, back string, opts generateOpts) error {
	result, err := c.newRunner().Execute(ctx, pipeline.Options{
		Settings:    s,
		Front:       front,
		Back:        back,
		Output:      opts.output,
		Format:      sink.Format(opts.format),
		Title:       opts.title,
		PixelsPerMM: opts.dpmm,
		Logger:      loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}
	printSuccess("Generated %s", result.Format)
	printPageStats(result.Cards, result.Stats.FrontPages, result.Stats.BackPages)
	for _, f := range result.Files {
		printFile(f)
	}
	printDetail("run %s, rendered in %s", result.RunID, (result.Stats.RenderTime + result.Stats.SaveTime).Round(time.Millisecond))
	return nil
}
