package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pulkitkochar/Book-Vaccine/internal/config"
	"github.com/pulkitkochar/Book-Vaccine/internal/cowin"
	apperrors "github.com/pulkitkochar/Book-Vaccine/internal/errors"
	"github.com/pulkitkochar/Book-Vaccine/internal/utils"
)

func locationsCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "Browse states and districts to find a district id",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			client := cowin.NewClient(cfg.Polling.Timeout)
			districtID, err := selectDistrict(cmd.Context(), client)
			if err != nil {
				return err
			}
			fmt.Printf("\nSelected district id: %d (set location.district_id in your config)\n", districtID)
			return nil
		},
	}
}

// selectDistrict walks the user through the state and district tables and
// returns the chosen district id.
func selectDistrict(ctx context.Context, client *cowin.Client) (int, error) {
	states, err := client.States(ctx)
	if err != nil {
		return 0, fmt.Errorf("unable to fetch states: %w", err)
	}
	var stateRows [][]string
	for _, s := range states {
		stateRows = append(stateRows, []string{s.StateName})
	}
	utils.RenderTable(os.Stdout, []string{"state"}, stateRows)

	idx, err := strconv.Atoi(prompt("\nEnter state index: "))
	if err != nil || idx < 1 || idx > len(states) {
		return 0, apperrors.NewConfigError("invalid state index")
	}

	districts, err := client.Districts(ctx, states[idx-1].StateID)
	if err != nil {
		return 0, fmt.Errorf("unable to fetch districts: %w", err)
	}
	var districtRows [][]string
	for _, d := range districts {
		districtRows = append(districtRows, []string{d.DistrictName, strconv.Itoa(d.DistrictID)})
	}
	utils.RenderTable(os.Stdout, []string{"district", "id"}, districtRows)

	idx, err = strconv.Atoi(prompt("\nEnter index of the district to monitor: "))
	if err != nil || idx < 1 || idx > len(districts) {
		return 0, apperrors.NewConfigError("invalid district index")
	}
	return districts[idx-1].DistrictID, nil
}
