package cli

import (
	"github.com/spf13/cobra"
)

func newSchemaCmd(sf *sessionFlags) *cobra.Command {
	var rf readFlags
	cmd := &cobra.Command{
		Use:   "schema <path>",
		Short: "Print the schema of a file as a tree",
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
			return sess.PrintSchema(df, cmd.OutOrStdout())
		},
	}
	rf.register(cmd)
	return cmd
}
