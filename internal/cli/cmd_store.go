package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heymumma/heymumma/internal/account/app"
	"github.com/heymumma/heymumma/internal/account/service"
	"github.com/heymumma/heymumma/internal/account/store"
	"github.com/heymumma/heymumma/internal/account/store/drivers/sqlite"
	"github.com/heymumma/heymumma/pkg/heysdk"
)

var errAccountNotFound = errors.New("account not found")

func newStoreCommand(out io.Writer) *cobra.Command {
	var dbFile string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect and prepare the account database",
	}
	cmd.PersistentFlags().StringVar(&dbFile, "db", "", "Database file (default from HEYMUMMA_DATABASE_FILE)")

	open := func(cmd *cobra.Command) (*sqlite.Store, error) {
		cfg, err := app.LoadConfig()
		if err != nil {
			return nil, err
		}
		if dbFile != "" {
			cfg.DatabaseFile = dbFile
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
		return app.OpenStore(cmd.Context(), cfg, logger)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ensure",
		Short: "Create or upgrade the schema and print the profile flag mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			_, err = fmt.Fprintf(out, "schema_mode=%s\n", st.Mode())
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <email>",
		Short: "Print one account as JSON, without its password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			svc := &service.AccountService{Store: st}
			a, err := svc.GetAccount(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: %s", errAccountNotFound, args[0])
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(heysdk.AccountResponse{
				Email:            a.Email,
				Name:             a.Name,
				Age:              a.Age,
				Height:           a.Height,
				Weight:           a.Weight,
				Pregnancies:      a.Pregnancies,
				DueDate:          a.DueDate,
				RegistrationDate: a.RegistrationDate,
				ProfileCompleted: a.ProfileCompleted,
			})
		},
	})

	return cmd
}
