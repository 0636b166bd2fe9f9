package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulkitkochar/Book-Vaccine/internal/auth"
	"github.com/pulkitkochar/Book-Vaccine/internal/config"
	"github.com/pulkitkochar/Book-Vaccine/internal/cowin"
	"github.com/pulkitkochar/Book-Vaccine/internal/utils"
)

func loginCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in with a mobile OTP and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			client := cowin.NewClient(cfg.Polling.Timeout)
			sess, err := loginWithOTP(cmd.Context(), client)
			if err != nil {
				return err
			}
			store := auth.NewStore(cfg.Session.StateFile)
			if err := store.Save(sess); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}
			utils.GetLogger().Sugar().Infof("Token generated and saved to %s (valid ~%s)",
				cfg.Session.StateFile, cfg.Session.MaxAge)
			return nil
		},
	}
}

// loginWithOTP runs the two-step OTP exchange. The entered OTP is sent as
// its SHA-256 digest, the way the endpoint expects it.
func loginWithOTP(ctx context.Context, client *cowin.Client) (auth.Session, error) {
	mobile := prompt("Enter the registered mobile number: ")

	for {
		txnID, err := client.GenerateOTP(ctx, mobile)
		if err != nil {
			fmt.Printf("Unable to generate OTP: %v\n", err)
			if !promptYesNo("Retry? (y/n Default y): ", true) {
				return auth.Session{}, err
			}
			continue
		}
		fmt.Println("Successfully requested OTP for mobile number")

		otp := prompt("Enter OTP (if this takes more than 2 minutes, press Enter to retry): ")
		if otp == "" {
			continue
		}

		digest := sha256.Sum256([]byte(otp))
		fmt.Println("Validating OTP..")
		token, err := client.ValidateOTP(ctx, hex.EncodeToString(digest[:]), txnID)
		if err != nil {
			fmt.Printf("Unable to validate OTP: %v\n", err)
			if !promptYesNo("Retry? (y/n Default y): ", true) {
				return auth.Session{}, err
			}
			continue
		}
		return auth.NewSession(token, time.Now()), nil
	}
}
