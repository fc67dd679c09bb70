package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Beastly713/hashira/pkg/digits"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [digits] [base]",
	Short: "Print the decimal value of a digit string in a given base",
	Example: `  hashira decode ff 16
  255`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := digits.ParseBase(args[1])
		if err != nil {
			return err
		}

		n, err := digits.Decode(args[0], base)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), n.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
