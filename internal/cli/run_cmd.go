package cli

import (
	"github.com/go-sif/frames/pipeline"
	"github.com/spf13/cobra"
)

func newRunCmd(sf *sessionFlags) *cobra.Command {
	var show int
	cmd := &cobra.Command{
		Use:   "run <pipeline.yaml>",
		Short: "Run a YAML pipeline, displaying the result of each step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pipeline.LoadFile(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("show") {
				p.Show = &show
			}
			sess, err := sf.create(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()
			_, err = p.Run(cmd.Context(), sess, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().IntVar(&show, "show", pipeline.DefaultShow, "Rows displayed after each step, unless a step overrides it (0 = none)")
	return cmd
}
