package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/catalog-backoffice/pkg/adminclient"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage users"}
	cmd.AddCommand(editCmd(app, "user", adminclient.UsersPath, (*adminclient.Client).Users, newUserEditor))
	return cmd
}

func newProductsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Manage products"}
	cmd.AddCommand(
		editCmd(app, "product", adminclient.ProductsPath, (*adminclient.Client).Products, newProductEditor),
		createCmd(app, "product", (*adminclient.Client).Products, newProductEditor, func(p adminclient.Product) int64 { return p.ID }),
		deleteCmd(app, "product", (*adminclient.Client).Products),
	)
	return cmd
}

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "categories", Short: "Manage categories"}
	cmd.AddCommand(
		editCmd(app, "category", adminclient.CategoriesPath, (*adminclient.Client).Categories, newCategoryEditor),
		createCmd(app, "category", (*adminclient.Client).Categories, newCategoryEditor, func(c adminclient.Category) int64 { return c.ID }),
		deleteCmd(app, "category", (*adminclient.Client).Categories),
	)
	return cmd
}

func editCmd[T any](app *App, kind, listPath string, resource func(*adminclient.Client) *adminclient.Resource[T], newEditor func(T) editor[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runEdit[T](cmd.Context(), app, resource(app.client()), id, listPath, newEditor, editOptions{})
		},
	}
}

func createCmd[T any](app *App, kind string, resource func(*adminclient.Client) *adminclient.Resource[T], newEditor func(T) editor[T], idOf func(T) int64) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a " + kind,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var v T
			ed := newEditor(v)
			if err := app.runForm(ed.Form()); err != nil {
				return err
			}
			if err := ed.Apply(&v); err != nil {
				return err
			}
			out, msg, err := resource(app.client()).Create(cmd.Context(), v)
			if err != nil {
				return err
			}
			notifier{w: app.Err}.Success(msg)
			fmt.Fprintln(app.Out, idOf(out))
			return nil
		},
	}
}

func deleteCmd[T any](app *App, kind string, resource func(*adminclient.Client) *adminclient.Resource[T]) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := app.confirm(fmt.Sprintf("Delete %s %d?", kind, id))
				if err != nil {
					return err
				}
				if !ok {
					return errAborted
				}
			}
			msg, err := resource(app.client()).Delete(cmd.Context(), id, nil)
			if err != nil {
				return err
			}
			notifier{w: app.Err}.Success(msg)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
