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
	"os"
	"text/tabwriter"

	"github.com/AleutianAI/agroview/pkg/dates"
	"github.com/AleutianAI/agroview/pkg/farm"
	"github.com/AleutianAI/agroview/pkg/ux"
)

func renderFieldSummaries(summaries []farm.FieldSummary) {
	ux.Title("Your fields")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCROP\tSTATUS\tDAYS PLANTED")
	for _, s := range summaries {
		crop := s.CropName
		if crop == "" {
			crop = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", s.ID, s.Name, crop, ux.FieldStatus(s.Status), s.Days)
	}
	w.Flush()
}

func renderFieldView(view farm.FieldView) {
	f := view.Field
	ux.Title(f.Name)
	ux.Muted(fmt.Sprintf("%s · %s", f.Location, f.SizeLabel))
	fmt.Println()

	if view.Crop == nil {
		ux.Info("No crop planted on this field.")
	} else {
		c := view.Crop
		fmt.Printf("Crop:      %s (%s)\n", c.Title, ux.FieldStatus(c.Status))
		fmt.Printf("Planted:   %s (%d days ago)\n", orDash(dates.ToDisplay(c.PlantingDate)), view.DaysSincePlanting)
		fmt.Printf("Harvest:   %s (%d days to go)\n", orDash(dates.ToDisplay(c.HarvestDate)), view.HarvestCountdown)
		if c.SoilType != "" {
			fmt.Printf("Soil:      %s\n", c.SoilType)
		}
		if c.SunlightPlan != "" {
			fmt.Printf("Sunlight:  %s\n", c.SunlightPlan)
		}
		if c.WateringPlan != "" {
			fmt.Printf("Watering:  %s\n", c.WateringPlan)
		}
	}

	fmt.Println()
	renderProgress(view.Progress)

	fmt.Println()
	if len(view.Tasks) == 0 {
		ux.Info("No tasks scheduled for this field.")
	} else {
		renderTasks(view.Tasks)
	}
}

func renderProgress(p *farm.ProgressEntry) {
	if p == nil {
		ux.Info("No progress record for this field.")
		return
	}
	fmt.Printf("Watered:     %s\n", orDash(dates.ToDisplay(p.Watered)))
	fmt.Printf("Fertilized:  %s\n", orDash(dates.ToDisplay(p.Fertilized)))
	fmt.Printf("Pests:       %s\n", orDash(dates.ToDisplay(p.Pests)))
}

func renderTasks(tasks []farm.Task) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFIELD\tDUE\tDESCRIPTION")
	for _, t := range tasks {
		id := fmt.Sprintf("%d", t.ID)
		if t.ID == 0 {
			// Optimistic row the backend hasn't acknowledged yet.
			id = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, orDash(t.DisplayFieldName), orDash(dates.ToDisplay(t.DueDate)), t.Description)
	}
	w.Flush()
}

func renderCrops(crops []farm.Crop) {
	ux.Title("Your crops")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCROP\tFIELD\tSTATUS\tPLANTED\tHARVEST")
	for _, c := range crops {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Title, orDash(c.FieldName), ux.FieldStatus(c.Status),
			orDash(dates.ToDisplay(c.PlantingDate)), orDash(dates.ToDisplay(c.HarvestDate)))
	}
	w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
