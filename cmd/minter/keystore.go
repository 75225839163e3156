package main

import (
	"fmt"

	"github.com/AlexZinkM/asset-minter/internal/config"
	"github.com/AlexZinkM/asset-minter/internal/crypto"
	"github.com/AlexZinkM/asset-minter/internal/model"
	"github.com/AlexZinkM/asset-minter/minter"

	"github.com/spf13/cobra"
)

func newKeystoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keystore",
		Short: "Manage the local .cwt keystore",
	}
	cmd.AddCommand(newKeystoreGenerateCmd(), newKeystoreAddressesCmd())
	return cmd
}

func newKeystoreGenerateCmd() *cobra.Command {
	var (
		filePath string
		accounts int
		network  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Algorand accounts into a new encrypted keystore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := model.ParseNetwork(network)
			if err != nil {
				return err
			}

			if err := config.PromptForPassword(); err != nil {
				return err
			}
			password, err := config.GetKeystorePasswordBytes()
			if err != nil {
				return err
			}
			defer clear(password) // Always clear password from memory

			addresses, err := minter.GenerateKeystore(filePath, n, accounts, password, crypto.DefaultKDFParams())
			if err != nil {
				if minter.IsFileExistsError(err) {
					return fmt.Errorf("%w: refusing to overwrite", err)
				}
				return err
			}

			for _, a := range addresses {
				fmt.Fprintln(cmd.OutOrStdout(), a)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "wallet.cwt", "keystore file to create (.cwt)")
	cmd.Flags().IntVarP(&accounts, "accounts", "n", 1, "number of accounts to generate")
	cmd.Flags().StringVar(&network, "network", string(model.NetworkTestnet), "network recorded in the keystore")
	return cmd
}

func newKeystoreAddressesCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "addresses",
		Short: "Print the addresses stored in a keystore without decrypting it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := crypto.ReadKeystore(filePath)
			if err != nil {
				return err
			}
			for _, a := range file.Addresses() {
				fmt.Fprintln(cmd.OutOrStdout(), a)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "wallet.cwt", "keystore file (.cwt)")
	return cmd
}
