package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulkitkochar/Book-Vaccine/internal/auth"
	"github.com/pulkitkochar/Book-Vaccine/internal/config"
	"github.com/pulkitkochar/Book-Vaccine/internal/cowin"
	"github.com/pulkitkochar/Book-Vaccine/internal/entities"
	apperrors "github.com/pulkitkochar/Book-Vaccine/internal/errors"
	"github.com/pulkitkochar/Book-Vaccine/internal/utils"
)

func beneficiariesCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "beneficiaries",
		Short: "List the beneficiaries registered to the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			store := auth.NewStore(cfg.Session.StateFile)
			sess, ok, err := store.Load()
			if err != nil {
				return err
			}
			if !ok {
				return apperrors.NewConfigError("no stored session; run the login command first")
			}
			client := cowin.NewClient(cfg.Polling.Timeout)
			client.SetToken(sess.Token)

			list, err := client.Beneficiaries(cmd.Context())
			if err != nil {
				return fmt.Errorf("unable to fetch beneficiaries: %w", err)
			}
			renderBeneficiaries(list)
			return nil
		},
	}
}

func renderBeneficiaries(list []entities.Beneficiary) {
	var rows [][]string
	for _, b := range list {
		rows = append(rows, []string{
			b.ReferenceID, b.Name, b.Vaccine,
			strconv.Itoa(b.Age(time.Now())), b.VaccinationStatus,
		})
	}
	utils.RenderTable(os.Stdout, []string{"bref_id", "name", "vaccine", "age", "status"}, rows)
}

// selectBeneficiaries lists the account's beneficiaries and prompts for the
// ones to book, returning their reference ids.
func selectBeneficiaries(ctx context.Context, client *cowin.Client) ([]string, error) {
	list, err := client.Beneficiaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch beneficiaries: %w", err)
	}
	if len(list) == 0 {
		return nil, apperrors.NewConfigError("the account has no registered beneficiaries")
	}
	renderBeneficiaries(list)
	fmt.Print(beneficiaryNotes)

	input := prompt("Enter comma separated index numbers of beneficiaries to book for: ")
	indexes, err := utils.ParseIndexList(input, len(list))
	if err != nil {
		return nil, apperrors.NewConfigError("invalid beneficiary selection: %v", err)
	}

	var ids []string
	var selected []entities.Beneficiary
	for _, i := range indexes {
		ids = append(ids, list[i].ReferenceID)
		selected = append(selected, list[i])
	}
	fmt.Println("Selected beneficiaries:")
	renderBeneficiaries(selected)
	return ids, nil
}
