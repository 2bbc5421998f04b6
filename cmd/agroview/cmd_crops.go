// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/agroview/pkg/farm"
	"github.com/AleutianAI/agroview/pkg/ux"
	"github.com/AleutianAI/agroview/pkg/viewstate"
)

func runCropsList(cmd *cobra.Command, args []string) error {
	userID, err := currentUserID()
	if err != nil {
		return err
	}
	crops, err := aggregator.LoadCropsOverview(cmd.Context(), userID)
	if err != nil {
		return err
	}
	if len(crops) == 0 {
		ux.Info("No crops planted yet.")
		return nil
	}
	renderCrops(crops)
	return nil
}

func runCropEdit(cmd *cobra.Command, args []string) error {
	cropID, err := argInt(args[0], "crop id")
	if err != nil {
		return err
	}
	store, crop, err := loadCropsStore(cmd.Context(), cropID)
	if err != nil {
		return err
	}

	title, status := titleFlag, statusFlag
	if title == "" && status == "" {
		title = crop.Title
		status = crop.Status
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Crop name").Value(&title),
				huh.NewSelect[string]().
					Title("Status").
					Options(
						huh.NewOption(farm.StatusHealthy, farm.StatusHealthy),
						huh.NewOption(farm.StatusAttention, farm.StatusAttention),
						huh.NewOption(farm.StatusCritical, farm.StatusCritical),
					).
					Value(&status),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}
	if title == "" {
		title = crop.Title
	}
	if status == "" {
		status = crop.Status
	}
	if err := mutator.EditCrop(cmd.Context(), store, cropID, title, status); err != nil {
		return err
	}
	ux.Success("Crop updated")
	renderCrops(store.Get())
	return nil
}

func runCropDelete(cmd *cobra.Command, args []string) error {
	cropID, err := argInt(args[0], "crop id")
	if err != nil {
		return err
	}
	store, crop, err := loadCropsStore(cmd.Context(), cropID)
	if err != nil {
		return err
	}
	if !yesFlag {
		confirmed, err := confirm(fmt.Sprintf("Delete crop %q on field %s?", crop.Title, crop.FieldName))
		if err != nil {
			return err
		}
		if !confirmed {
			ux.Info("Kept the crop.")
			return nil
		}
	}
	if err := mutator.DeleteCrop(cmd.Context(), store, cropID); err != nil {
		return err
	}
	ux.Success("Crop deleted")
	return nil
}

// loadCropsStore loads the user's crops overview into a store and returns
// the crop the command targets.
func loadCropsStore(ctx context.Context, cropID int) (*viewstate.Store[[]farm.Crop], farm.Crop, error) {
	userID, err := currentUserID()
	if err != nil {
		return nil, farm.Crop{}, err
	}
	crops, err := aggregator.LoadCropsOverview(ctx, userID)
	if err != nil {
		return nil, farm.Crop{}, err
	}
	for _, c := range crops {
		if c.ID == cropID {
			return viewstate.NewStore(crops), c, nil
		}
	}
	return nil, farm.Crop{}, fmt.Errorf("crop %d not found in your fields", cropID)
}
