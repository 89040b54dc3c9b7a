package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"storefront/internal/client"
	"storefront/internal/localstore"
	"storefront/internal/logger"
	"storefront/internal/view"
)

type app struct {
	api     *client.Client
	store   localstore.Store
	timeout time.Duration
	out     io.Writer
}

func (a *app) shopper() *view.Shopper {
	return view.NewShopper(a.store)
}

func defaultHome() string {
	if home := os.Getenv("STOREFRONT_HOME"); home != "" {
		return home
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "storefront")
	}
	return ".storefront"
}

func defaultAPI() string {
	if api := os.Getenv("STOREFRONT_API"); api != "" {
		return api
	}
	return client.DefaultBaseURL
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		apiURL   string
		home     string
		logLevel string
	)

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the storefront catalog and manage a local cart",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger.InitWithWriter(cmd.ErrOrStderr(), logLevel)

			store, err := localstore.NewFileStore(home)
			if err != nil {
				return err
			}
			a.store = store
			a.api = client.New(apiURL, client.WithTimeout(a.timeout))
			a.out = cmd.OutOrStdout()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api", defaultAPI(), "storefront API base URL")
	root.PersistentFlags().StringVar(&home, "home", defaultHome(), "directory holding the local cart and favorites")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", view.DefaultTimeout, "request timeout")

	root.AddCommand(
		newProductsCmd(a),
		newProductCmd(a),
		newCategoriesCmd(a),
		newCartCmd(a),
		newFavoritesCmd(a),
		newAdminCmd(a),
		newRegisterCmd(a),
		newLoginCmd(a),
	)
	return root
}

func printf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}
