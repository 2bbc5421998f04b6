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
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/agroview/pkg/dates"
	"github.com/AleutianAI/agroview/pkg/ux"
)

func runProgressEdit(cmd *cobra.Command, args []string) error {
	fieldID, err := argInt(args[0], "field id")
	if err != nil {
		return err
	}
	store, err := loadFieldStore(cmd.Context(), fieldID)
	if err != nil {
		return err
	}
	view := store.Get()
	if view.Progress == nil {
		return fmt.Errorf("field %d has no progress record to edit", fieldID)
	}

	watered, fertilized, pests := wateredFlag, fertilizedFlag, pestsFlag
	if watered == "" && fertilized == "" && pests == "" {
		watered = dates.ToDisplay(view.Progress.Watered)
		fertilized = dates.ToDisplay(view.Progress.Fertilized)
		pests = dates.ToDisplay(view.Progress.Pests)
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Last watered (DD/MM/YYYY)").Value(&watered),
				huh.NewInput().Title("Last fertilized (DD/MM/YYYY)").Value(&fertilized),
				huh.NewInput().Title("Last pest control (DD/MM/YYYY)").Value(&pests),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}
	if err := mutator.EditProgress(cmd.Context(), store, watered, fertilized, pests); err != nil {
		return err
	}
	ux.Success("Progress updated")
	renderProgress(store.Get().Progress)
	return nil
}
