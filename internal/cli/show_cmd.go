package cli

import (
	"github.com/go-sif/frames/session"
	"github.com/spf13/cobra"
)

func newShowCmd(sf *sessionFlags) *cobra.Command {
	var (
		rf       readFlags
		n        int
		truncate int
	)
	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Display the first rows of a file as a grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := sf.create(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()
			df, err := rf.read(sess, args[0])
			if err != nil {
				return err
			}
			return sess.ShowTruncated(cmd.Context(), df, n, truncate, cmd.OutOrStdout())
		},
	}
	rf.register(cmd)
	cmd.Flags().IntVarP(&n, "num-rows", "n", 20, "Number of rows to show")
	cmd.Flags().IntVar(&truncate, "truncate", session.DefaultTruncate, "Truncate cells to this many characters (0 = never)")
	return cmd
}
