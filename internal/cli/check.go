package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardsheet/pkg/images"
	"github.com/matzehuels/cardsheet/pkg/layout"
	"github.com/matzehuels/cardsheet/pkg/pipeline"
)

func (c *CLI) checkCommand() *cobra.Command {
	var sf settingsFlags
	var workers int

	cmd := &cobra.Command{
		Use:   "check FRONT [BACK]",
		Short: "Check that a run would succeed without rendering",
		Long: `Check resolves the images, validates the grid against the page and decodes
every image header. It reports the fit, the page counts and each image's
aspect ratio compared with the card.`,
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
			return c.runCheck(cmd.Context(), s, args[0], back, workers)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent image decoders (default GOMAXPROCS)")
	sf.register(cmd)

	return cmd
}

// aspectTolerance is the relative aspect difference reported as a mismatch.
const aspectTolerance = 0.02

func (c *CLI) runCheck(ctx context.Context, s layout.Settings, front, back string, workers int) error {
	sp := newSpinner(ctx, "Decoding image headers...").start()
	plan, err := c.newRunner().Plan(ctx, pipeline.Options{
		Settings: s,
		Front:    front,
		Back:     back,
		Workers:  workers,
		Logger:   loggerFromContext(ctx),
	})
	sp.stop()
	if err != nil {
		return err
	}

	printSuccess("Ready to generate")
	printKeyValue("Page", fmt.Sprintf("%.1f × %.1f mm", s.PageWidth, s.PageHeight))
	printKeyValue("Grid", fmt.Sprintf("%d × %d, %.1f × %.1f mm", s.Columns, s.Rows, plan.Fit.GridWidth, plan.Fit.GridHeight))
	printKeyValue("Slack", fmt.Sprintf("%.1f × %.1f mm", plan.Fit.SlackX, plan.Fit.SlackY))
	printKeyValue("Back mode", s.BackMode.String())
	printPageStats(len(plan.Fronts), plan.FrontPages, plan.BackPages)

	cardAspect := s.CardWidth / s.CardHeight
	rows := mismatchRows(plan.Fronts, cardAspect)
	rows = append(rows, mismatchRows(plan.Backs, cardAspect)...)
	if len(rows) > 0 {
		printNewline()
		printWarning("%d image(s) differ from the card aspect %.3f and will be stretched", len(rows), cardAspect)
		printTable([]string{"Image", "Pixels", "Aspect"}, rows)
	}

	printNewline()
	printNextStep("Generate the sheet", "cardsheet generate "+front+" -o cards.pdf")
	return nil
}

func mismatchRows(infos []images.Info, cardAspect float64) [][]string {
	var rows [][]string
	for _, info := range infos {
		if d := info.Aspect()/cardAspect - 1; d > aspectTolerance || d < -aspectTolerance {
			rows = append(rows, []string{
				info.Ref.Name(),
				fmt.Sprintf("%d×%d", info.Width, info.Height),
				fmt.Sprintf("%.3f", info.Aspect()),
			})
		}
	}
	return rows
}
