package main

import (
	"context"
	"fmt"

	"github.com/navbryce/yatube/controllers"
	"github.com/navbryce/yatube/model"
	"github.com/spf13/cobra"
)

func GroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage post groups",
	}
	cmd.AddCommand(groupCreateCmd(), groupDeleteCmd())
	return cmd
}

func withGroupController(cmd *cobra.Command, fn func(ctx context.Context, controller *controllers.GroupController) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	controller, err := controllers.NewGroupController(ctx, database)
	if err != nil {
		return fmt.Errorf("failed to load groups: %w", err)
	}
	return fn(ctx, controller)
}

func groupCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			slug, _ := cmd.Flags().GetString("slug")
			description, _ := cmd.Flags().GetString("description")
			return withGroupController(cmd, func(ctx context.Context, controller *controllers.GroupController) error {
				group := &model.Group{Title: title, Slug: slug, Description: description}
				if _, httpErr := controller.CreateGroup(ctx, group); httpErr != nil {
					return httpErr
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created group %v (id=%v)\n", group.Slug, group.Id)
				return nil
			})
		},
	}
	cmd.Flags().String("title", "", "Group title")
	cmd.Flags().String("slug", "", "URL slug, derived from the title when empty")
	cmd.Flags().String("description", "", "Group description")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func groupDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a group, its posts are kept without a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			slug, _ := cmd.Flags().GetString("slug")
			return withGroupController(cmd, func(ctx context.Context, controller *controllers.GroupController) error {
				if httpErr := controller.DeleteGroup(ctx, slug); httpErr != nil {
					return httpErr
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted group %v\n", slug)
				return nil
			})
		},
	}
	cmd.Flags().String("slug", "", "Slug of the group to delete")
	_ = cmd.MarkFlagRequired("slug")
	return cmd
}
