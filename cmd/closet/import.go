package main

import (
	"fmt"

	"github.com/liliang-cn/closet/internal/config"
	"github.com/liliang-cn/closet/internal/repository"
	"github.com/liliang-cn/closet/internal/seed"
	"github.com/liliang-cn/closet/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add the items of a YAML or JSON wardrobe file to a user's closet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if userID == "" {
				userID = cfg.Auth.DefaultUser
			}

			items, err := seed.Load(args[0])
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := repository.NewDB(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := service.NewWardrobeService(repository.NewClothingRepository(db), logger, nil, cfg.Locale())
			n, err := svc.Import(cmd.Context(), userID, items)
			if err != nil {
				return fmt.Errorf("imported %d of %d items: %w", n, len(items), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d items for %s\n", n, userID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "Owner of the imported items (default auth.default_user)")
	return cmd
}
