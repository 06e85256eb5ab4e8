package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardsheet/pkg/images"
)

func (c *CLI) duplicateCommand() *cobra.Command {
	var opts images.DuplicateOptions

	cmd := &cobra.Command{
		Use:   "duplicate SRC DST",
		Short: "Write several copies of every card image",
		Long: `Duplicate writes N copies of every image in SRC into DST, named
<name>_copy1, <name>_copy2 and so on, so that a deck with repeated cards can
be laid out with generate.`,
		Example: `  cardsheet duplicate cards/ deck/ -n 3
  cardsheet duplicate cards/ deck/ -n 2 --convert`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			opts.Logger = logger
			prog := newProgress(logger)

			n, err := images.Duplicate(cmd.Context(), args[0], args[1], opts)
			if err != nil {
				return err
			}
			prog.done("Duplicated images")

			printSuccess("Wrote %d file(s)", n)
			printFile(args[1])
			printNewline()
			printNextStep("Lay them out", "cardsheet generate "+args[1]+" -o cards.pdf")
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Copies, "copies", "n", 2, "copies per image")
	cmd.Flags().BoolVar(&opts.ConvertJPEG, "convert", false, "re-encode copies as JPEG")
	cmd.Flags().IntVar(&opts.Quality, "quality", 95, "JPEG quality with --convert")

	return cmd
}
