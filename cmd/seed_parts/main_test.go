package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog_UTF8(t *testing.T) {
	in := "sku,name,cost,selling_price,quantity_on_hand,core_charge\n" +
		"ALT-1,Alternador,120.50,189.99,3,40\n" +
		"BRK-2, Pastillas de freno ,\"20,5\",35,10,\n" +
		"ALT-1,Alternador reman.,110,180,2,40\n"
	rows, err := parseCatalog(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "ALT-1", rows[0].SKU)
	assert.Equal(t, "Alternador reman.", rows[0].Name, "gana la última fila del SKU")
	assert.Equal(t, "110", rows[0].Cost.String())
	assert.Equal(t, "Pastillas de freno", rows[1].Name)
	assert.Equal(t, "20.5", rows[1].Cost.String())
	assert.True(t, rows[1].CoreCharge.IsZero())
}

func TestParseCatalog_Latin1(t *testing.T) {
	// "Bujía" en ISO-8859-1: í = 0xED
	in := append([]byte("sku,name,cost,selling_price,quantity_on_hand\nBUJ-1,Buj"), 0xED)
	in = append(in, []byte("a,2,4,8\n")...)
	rows, err := parseCatalog(bytes.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bujía", rows[0].Name)
}

func TestParseCatalog_Errores(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("sku,name\nA,B\n"))
	assert.ErrorContains(t, err, "falta la columna")

	_, err = parseCatalog(strings.NewReader("sku,name,cost,selling_price,quantity_on_hand\nA,B,-1,2,0\n"))
	assert.ErrorContains(t, err, "línea 2")

	_, err = parseCatalog(strings.NewReader("sku,name,cost,selling_price,quantity_on_hand\n,B,1,2,0\n"))
	assert.ErrorContains(t, err, "requeridos")
}

func TestWriteSQL(t *testing.T) {
	rows, err := parseCatalog(strings.NewReader("sku,name,cost,selling_price,quantity_on_hand,core_charge\nALT-1,Alternador O'Neil,120,189.9,3,40\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, "company-a", rows, func() string { return "id-1" }))
	out := buf.String()
	assert.Contains(t, out, "VALUES ('id-1', 'company-a', 'ALT-1', 'Alternador O''Neil', 120, 189.90, 3, true, 40.00)")
	assert.Contains(t, out, "ON CONFLICT (company_id, sku) DO UPDATE")
}

// ── Comando ──

const seedCompany = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

func TestSeedCommand_EscribeEnLaRutaIndicada(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "catalogo.csv")
	out := filepath.Join(dir, "parts.sql")
	require.NoError(t, os.WriteFile(in, []byte("sku,name,cost,selling_price,quantity_on_hand\nFLT-1,Filtro,10,15.5,4\n"), 0o644))

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--company", seedCompany, "--in", in, "--out", out})
	require.NoError(t, cmd.Execute())

	sql, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(sql), "'"+seedCompany+"', 'FLT-1', 'Filtro'")
	assert.Contains(t, stdout.String(), "1 repuestos")
}

func TestSeedCommand_ValidaCompany(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--in", "no-existe.csv"})
	assert.ErrorContains(t, cmd.Execute(), "company")

	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--company", "empresa-1"})
	assert.ErrorContains(t, cmd.Execute(), "company inválido")
}
