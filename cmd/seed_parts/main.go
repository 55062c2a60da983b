// seed_parts genera un script SQL para cargar (o actualizar) el catálogo de repuestos de
// una empresa a partir del CSV que exporta el proveedor.
//
// Uso: go run ./cmd/seed_parts --company <uuid> --in catalogo.csv [--out parts.sql]
// Sin --out escribe parts_<company>.sql en el directorio actual.
//
// Columnas esperadas (con encabezado): sku,name,cost,selling_price,quantity_on_hand,core_charge
// core_charge es opcional; si es > 0 el repuesto queda con core_required.
// Los CSV exportados en ISO-8859-1 se convierten a UTF-8 automáticamente.
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogRow struct {
	SKU            string
	Name           string
	Cost           decimal.Decimal
	SellingPrice   decimal.Decimal
	QuantityOnHand int
	CoreCharge     decimal.Decimal
}

var requiredColumns = []string{"sku", "name", "cost", "selling_price", "quantity_on_hand"}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var companyID, inPath, outPath string
	cmd := &cobra.Command{
		Use:          "seed_parts",
		Short:        "Genera upserts SQL del catálogo de repuestos desde un CSV",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := uuid.Parse(companyID); err != nil {
				return fmt.Errorf("company inválido %q: %w", companyID, err)
			}
			if outPath == "" {
				outPath = "parts_" + companyID + ".sql"
			}
			n, err := run(companyID, inPath, outPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generado %s: %d repuestos\n", outPath, n)
			return nil
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "UUID de la empresa dueña del catálogo")
	cmd.Flags().StringVar(&inPath, "in", "catalogo.csv", "CSV del proveedor")
	cmd.Flags().StringVar(&outPath, "out", "", "archivo SQL de salida (por defecto parts_<company>.sql)")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func run(companyID, inPath, outPath string) (int, error) {
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return 0, fmt.Errorf("abrir CSV: %w", err)
	}
	rows, err := parseCatalog(bytes.NewReader(raw))
	if err != nil {
		return 0, fmt.Errorf("leer catálogo: %w", err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("crear archivo: %w", err)
	}
	defer out.Close()
	if err := writeSQL(out, companyID, rows, uuid.NewString); err != nil {
		return 0, fmt.Errorf("escribir SQL: %w", err)
	}
	return len(rows), nil
}

// parseCatalog lee el CSV del proveedor. Si el contenido no es UTF-8 válido se decodifica
// como ISO-8859-1. Filas con SKU repetido: gana la última.
func parseCatalog(r io.Reader) ([]catalogRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	bySKU := map[string]catalogRow{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		row := catalogRow{SKU: get("sku"), Name: get("name")}
		if row.SKU == "" || row.Name == "" {
			return nil, fmt.Errorf("línea %d: sku y name son requeridos", line)
		}
		if row.Cost, err = parseAmount(get("cost")); err != nil {
			return nil, fmt.Errorf("línea %d: cost: %w", line, err)
		}
		if row.SellingPrice, err = parseAmount(get("selling_price")); err != nil {
			return nil, fmt.Errorf("línea %d: selling_price: %w", line, err)
		}
		if row.CoreCharge, err = parseAmount(get("core_charge")); err != nil {
			return nil, fmt.Errorf("línea %d: core_charge: %w", line, err)
		}
		if q := get("quantity_on_hand"); q != "" {
			if row.QuantityOnHand, err = strconv.Atoi(q); err != nil {
				return nil, fmt.Errorf("línea %d: quantity_on_hand: %w", line, err)
			}
		}
		bySKU[row.SKU] = row
	}

	out := make([]catalogRow, 0, len(bySKU))
	for _, r := range bySKU {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

// parseAmount acepta vacío (cero) y montos con coma decimal ("12,50").
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("monto negativo %s", s)
	}
	return d, nil
}

// writeSQL escribe un upsert por repuesto. El ID solo se usa al insertar: un SKU existente
// conserva su ID y su existencia; se actualizan nombre, costo, precio y casco.
func writeSQL(w io.Writer, companyID string, rows []catalogRow, newID func() string) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de repuestos\n")
	fmt.Fprintf(&b, "-- Empresa: %s\n\n", companyID)
	for _, r := range rows {
		fmt.Fprintf(&b, "INSERT INTO parts (id, company_id, sku, name, cost, selling_price, quantity_on_hand, core_required, core_charge_amount)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', %s, %s, %d, %t, %s)\n",
			newID(), escapeSQL(companyID), escapeSQL(r.SKU), escapeSQL(r.Name),
			r.Cost.String(), r.SellingPrice.StringFixed(2), r.QuantityOnHand,
			r.CoreCharge.IsPositive(), r.CoreCharge.StringFixed(2))
		b.WriteString("ON CONFLICT (company_id, sku) DO UPDATE SET name = EXCLUDED.name, cost = EXCLUDED.cost,\n")
		b.WriteString("  selling_price = EXCLUDED.selling_price, core_required = EXCLUDED.core_required,\n")
		b.WriteString("  core_charge_amount = EXCLUDED.core_charge_amount, updated_at = now();\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
