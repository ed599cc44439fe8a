package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

const hashCost = 10

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "passwd",
		Short:        "管理员密码工具",
		SilenceUsage: true,
	}
	root.AddCommand(newHashCmd(), newVerifyCmd())
	return root
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <password>",
		Short: "生成 bcrypt 哈希",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), hashCost)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, string(hash))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "写入配置：")
			fmt.Fprintf(out, "APP_AUTH_ADMIN_PASSWORD_HASH='%s'\n", hash)
			return nil
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <password> <hash>",
		Short: "校验密码与哈希是否匹配",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := bcrypt.CompareHashAndPassword([]byte(args[1]), []byte(args[0]))
			switch {
			case err == nil:
				fmt.Fprintln(cmd.OutOrStdout(), "match")
				return nil
			case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
				fmt.Fprintln(cmd.OutOrStdout(), "no match")
				return err
			default:
				return fmt.Errorf("invalid hash: %w", err)
			}
		},
	}
}
