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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/agroview/pkg/farm"
	"github.com/AleutianAI/agroview/pkg/ux"
)

func runCommunityList(cmd *cobra.Command, args []string) error {
	raws, err := apiClient.GetCommunityRecommendations(cmd.Context())
	if err != nil {
		return err
	}
	posts := farm.NormalizeCommunityPosts(raws)
	if len(posts) == 0 {
		ux.Info("No community recommendations yet.")
		return nil
	}

	ux.Title("Community recommendations")
	for _, post := range posts {
		author := post.Author
		if author == "" {
			author = fmt.Sprintf("user %d", post.UserID)
		}
		ux.Muted(author)
		fmt.Println(post.Comment)
		fmt.Println()
	}
	return nil
}
