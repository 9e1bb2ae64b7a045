package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/roach88/inventory/internal/money"
	"github.com/roach88/inventory/internal/product"
)

// ListRow is one product with its stock valuation.
type ListRow struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Quantity    int64  `json:"quantity"`
	LastUpdated string `json:"last_updated"`
	Value       string `json:"value"`
}

// ListResult is the full inventory listing.
type ListResult struct {
	Products   []ListRow `json:"products"`
	TotalValue string    `json:"total_value"`
}

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all products with stock valuation",
		Long: `List every product in id order with its price, quantity and the value
of its stock (price times quantity), followed by the total inventory value.

Example:
  inventory list
  inventory list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}
}

func runList(cmd *cobra.Command, opts *RootOptions) error {
	st, err := openStore(opts.config.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	products, err := st.ListAll(commandContext(cmd))
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list products", err)
	}

	result := buildListResult(products)
	if opts.Format == "json" {
		return newFormatter(opts, cmd.OutOrStdout()).Success(result)
	}
	return writeListTable(cmd.OutOrStdout(), result)
}

// buildListResult values each product's stock. Values are computed in
// decimal dollars so large price and quantity products cannot overflow.
func buildListResult(products []product.Product) ListResult {
	result := ListResult{Products: make([]ListRow, 0, len(products))}
	total := decimal.Zero

	for _, p := range products {
		value := decimal.New(p.PriceCents, -2).Mul(decimal.NewFromInt(p.Quantity))
		total = total.Add(value)

		result.Products = append(result.Products, ListRow{
			ID:          p.ID,
			Name:        p.Name,
			Price:       money.Format(p.PriceCents),
			Quantity:    p.Quantity,
			LastUpdated: p.LastUpdated.String(),
			Value:       formatDollars(value),
		})
	}

	result.TotalValue = formatDollars(total)
	return result
}

func formatDollars(d decimal.Decimal) string {
	return money.Symbol + d.StringFixed(2)
}

func writeListTable(w io.Writer, result ListResult) error {
	if len(result.Products) == 0 {
		_, err := fmt.Fprintln(w, "inventory is empty")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQUANTITY\tUPDATED\tVALUE")
	for _, r := range result.Products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.Name, r.Price, r.Quantity, r.LastUpdated, r.Value)
	}
	fmt.Fprintf(tw, "\t\t\t\tTOTAL\t%s\n", result.TotalValue)
	return tw.Flush()
}
