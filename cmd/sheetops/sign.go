package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetops-go/pkg/sigcheck"
	"go.uber.org/zap"
)

func (a *app) signCmd() *cobra.Command {
	var keyPath, input, sigPath, scheme string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a file with an RSA private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sigcheck.ParseScheme(scheme)
			if err != nil {
				return err
			}
			if sigPath == "" {
				sigPath = input + ".sig"
			}
			if err := sigcheck.SignFile(keyPath, input, sigPath, s); err != nil {
				return err
			}
			a.logger.Info("signed file", zap.String("input", input), zap.String("signature", sigPath), zap.String("scheme", scheme))
			_, err = fmt.Fprintln(a.out, sigPath)
			return err
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", "", "PEM private key (required)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "File to sign (required)")
	cmd.Flags().StringVarP(&sigPath, "output", "o", "", "Signature file (default: input + .sig)")
	cmd.Flags().StringVar(&scheme, "scheme", string(sigcheck.SchemePSS), "Padding scheme: pss or pkcs1v15")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	var pubPath, input, sigPath, scheme string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a file signature with an RSA public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sigcheck.ParseScheme(scheme)
			if err != nil {
				return err
			}
			if sigPath == "" {
				sigPath = input + ".sig"
			}
			err = sigcheck.VerifyFile(pubPath, input, sigPath, s)
			if errors.Is(err, sigcheck.ErrVerification) {
				fmt.Fprintln(a.out, "Verification Failure")
				return err
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, "Verified OK")
			return err
		},
	}
	cmd.Flags().StringVar(&pubPath, "pub", "", "PEM public key (required)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Signed file (required)")
	cmd.Flags().StringVar(&sigPath, "sig", "", "Signature file (default: input + .sig)")
	cmd.Flags().StringVar(&scheme, "scheme", string(sigcheck.SchemePSS), "Padding scheme: pss or pkcs1v15")
	_ = cmd.MarkFlagRequired("pub")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
