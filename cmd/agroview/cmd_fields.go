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
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/agroview/pkg/farm"
	"github.com/AleutianAI/agroview/pkg/farmapi"
	"github.com/AleutianAI/agroview/pkg/ux"
	"github.com/AleutianAI/agroview/pkg/viewstate"
)

func runFieldsList(cmd *cobra.Command, args []string) error {
	userID, err := currentUserID()
	if err != nil {
		return err
	}
	summaries, err := aggregator.LoadFieldSummaries(cmd.Context(), userID)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		ux.Info("No fields registered yet. Try: agroview fields add")
		return nil
	}
	renderFieldSummaries(summaries)
	return nil
}

func runFieldShow(cmd *cobra.Command, args []string) error {
	fieldID, err := argInt(args[0], "field id")
	if err != nil {
		return err
	}
	store := viewstate.NewStore(farm.FieldView{})
	view, err := aggregator.LoadFieldView(cmd.Context(), fieldID, store)
	if err != nil {
		if farmapi.IsNotFound(err) {
			return fmt.Errorf("field %d not found", fieldID)
		}
		return err
	}
	renderFieldView(view)
	return nil
}

func runFieldAdd(cmd *cobra.Command, args []string) error {
	userID, err := currentUserID()
	if err != nil {
		return err
	}
	name, location, size, image := nameFlag, locationFlag, sizeFlag, imageFlag
	if name == "" || location == "" || size == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Field name").Value(&name),
				huh.NewInput().Title("Location").Value(&location),
				huh.NewInput().Title("Size (e.g. 12 ha)").Value(&size),
				huh.NewInput().Title("Image URL (optional)").Value(&image),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}
	raw, err := apiClient.CreateField(cmd.Context(), farmapi.CreateFieldRequest{
		UserID:    userID,
		Name:      name,
		Location:  location,
		FieldSize: size,
		ImageURL:  image,
	})
	if err != nil {
		return err
	}
	created := farm.NormalizeField(raw)
	ux.Success(fmt.Sprintf("Field %q registered with id %d", created.Name, created.ID))
	return nil
}

// argInt parses a positional id argument.
func argInt(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", what, arg)
	}
	return n, nil
}
