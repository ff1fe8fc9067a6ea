package docgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/leonardocandio/cargos/internal/model"
)

func writeTemplates(t *testing.T) map[model.DocumentKind]string {
	t.Helper()
	dir := t.TempDir()
	templates := map[model.DocumentKind]string{
		model.KindCargo:        filepath.Join(dir, "CARGO.tmpl"),
		model.KindAutorizacion: filepath.Join(dir, "AUTORIZACION.tmpl"),
	}
	cargo := "CARGO DE UNIFORMES\nNombre: {{.NOMBRE}}\nCargo: {{.CARGO}}\nMonto: {{.MONTO}}\n{{.PRENDAS}}\n"
	auth := "AUTORIZACION DE DESCUENTO\n{{.NOMBRE}} ({{.DNI}}) autoriza el descuento de {{.MONTO}}.\nFecha: {{.FECHA}}\n"
	if err := os.WriteFile(templates[model.KindCargo], []byte(cargo), 0644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := os.WriteFile(templates[model.KindAutorizacion], []byte(auth), 0644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return templates
}

func storeSheet(name, tienda string, people []model.PersonRecord, garments []model.GarmentRow) model.WorksheetParsingResult {
	return model.WorksheetParsingResult{
		Metadata: model.SheetMetadata{SheetName: name, Tienda: tienda, Administrador: "Maria Quispe"},
		People:   people,
		Garments: garments,
	}
}

func storePerson(name, occupation, dni, size string) model.PersonRecord {
	return person(map[string]string{
		"CARGO": occupation, "APELLIDOS Y NOMBRES": name, "DNI": dni, "TALLA CAMISA": size,
	})
}

func scenarioWorkbook() *model.ParsedWorkbook {
	return &model.ParsedWorkbook{
		FileID: "test",
		Sheets: []model.WorksheetParsingResult{
			storeSheet("Store1", "Store1",
				[]model.PersonRecord{
					storePerson("Ana Torres", "cajero", "44556677", "M"),
					storePerson("Bob Rojas", "cajero", "55667788", "XL"),
				},
				[]model.GarmentRow{
					{model.GarmentCamisa: 1},
					{model.GarmentCamisa: 1},
				}),
		},
	}
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	return NewGenerator(TextRenderer{}, TextMerger{}, writeTemplates(t), zap.NewNop())
}

func listFiles(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		files[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return files
}

func TestGenerateScenario(t *testing.T) {
	gen := newTestGenerator(t)
	out := t.TempDir()

	res := gen.Generate(context.Background(), scenarioWorkbook(), testCatalog(), model.GenerationOptions{
		Kinds:           []model.DocumentKind{model.KindCargo},
		DestinationRoot: out,
	})

	if !res.Success {
		t.Fatalf("Success=false: %s %v", res.Message, res.Errors)
	}
	if res.FilesGenerated != 2 {
		t.Fatalf("FilesGenerated=%d, want 2", res.FilesGenerated)
	}

	files := listFiles(t, out)
	ana := filepath.Join("Store1", "Ana_Torres", "CARGO_Ana_Torres_cajero.txt")
	bob := filepath.Join("Store1", "Bob_Rojas", "CARGO_Bob_Rojas_cajero.txt")
	if !strings.Contains(files[ana], "Monto: 10.00") {
		t.Fatalf("Ana document %q missing amount 10.00: %q", ana, files[ana])
	}
	if !strings.Contains(files[bob], "Monto: 12.00") {
		t.Fatalf("Bob document %q missing amount 12.00: %q", bob, files[bob])
	}
}

func TestGenerateNoKindsFails(t *testing.T) {
	gen := newTestGenerator(t)
	out := t.TempDir()

	res := gen.Generate(context.Background(), scenarioWorkbook(), testCatalog(), model.GenerationOptions{
		DestinationRoot: out,
	})

	if res.Success {
		t.Fatalf("Success=true with no kinds enabled")
	}
	if !strings.Contains(res.Message, "no templates selected") {
		t.Fatalf("Message=%q", res.Message)
	}
	if res.FilesGenerated != 0 {
		t.Fatalf("FilesGenerated=%d, want 0", res.FilesGenerated)
	}
	if files := listFiles(t, out); len(files) != 0 {
		t.Fatalf("files written despite failed preconditions: %v", files)
	}
}

func TestGenerateMissingTemplateFails(t *testing.T) {
	templates := map[model.DocumentKind]string{
		model.KindCargo: filepath.Join(t.TempDir(), "missing.tmpl"),
	}
	gen := NewGenerator(TextRenderer{}, TextMerger{}, templates, zap.NewNop())

	res := gen.Generate(context.Background(), scenarioWorkbook(), testCatalog(), model.GenerationOptions{
		Kinds:           []model.DocumentKind{model.KindCargo},
		DestinationRoot: t.TempDir(),
	})
	if res.Success {
		t.Fatalf("Success=true with missing template")
	}
	if len(res.Errors) == 0 {
		t.Fatalf("expected template error")
	}
}

func TestGenerateExcludesEmptyLocation(t *testing.T) {
	gen := newTestGenerator(t)
	out := t.TempDir()

	wb := scenarioWorkbook()
	wb.Sheets = append(wb.Sheets, storeSheet("NoTienda", "",
		[]model.PersonRecord{storePerson("Caro Diaz", "cajero", "66778899", "M")},
		[]model.GarmentRow{{model.GarmentCamisa: 1}}))

	res := gen.Generate(context.Background(), wb, testCatalog(), model.GenerationOptions{
		Kinds:           []model.DocumentKind{model.KindCargo},
		DestinationRoot: out,
	})

	if !res.Success {
		t.Fatalf("Success=false: %s", res.Message)
	}
	// Excluded even though SelectedLocations is unspecified, and surfaced
	// as an error, not a warning.
	if res.FilesGenerated != 2 {
		t.Fatalf("FilesGenerated=%d, want 2", res.FilesGenerated)
	}
	if !hasSubstring(res.Errors, "no tienda") {
		t.Fatalf("expected tienda exclusion error, got %v", res.Errors)
	}
	for rel := range listFiles(t, out) {
		if strings.Contains(rel, "Caro") {
			t.Fatalf("excluded sheet produced file %s", rel)
		}
	}
}

func TestGenerateLocationFilter(t *testing.T) {
	gen := newTestGenerator(t)
	out := t.TempDir()

	wb := scenarioWorkbook()
	wb.Sheets = append(wb.Sheets, storeSheet("Store2", "Store2",
		[]model.PersonRecord{storePerson("Caro Diaz", "cajero", "66778899", "M")},
		[]model.GarmentRow{{model.GarmentCamisa: 1}}))

	res := gen.Generate(context.Background(), wb, testCatalog(), model.GenerationOptions{
		SelectedLocations: []string{"Store2"},
		Kinds:             []model.DocumentKind{model.KindCargo},
		DestinationRoot:   out,
	})

	if res.FilesGenerated != 1 {
		t.Fatalf("FilesGenerated=%d, want 1", res.FilesGenerated)
	}
	files := listFiles(t, out)
	for rel := range files {
		if !strings.HasPrefix(rel, "Store2") {
			t.Fatalf("unexpected file outside Store2: %s", rel)
		}
	}
}

func TestGenerateCombinedPerLocation(t *testing.T) {
	gen := newTestGenerator(t)
	out := t.TempDir()

	res := gen.Generate(context.Background(), scenarioWorkbook(), testCatalog(), model.GenerationOptions{
		Kinds:              []model.DocumentKind{model.KindCargo},
		CombinePerLocation: true,
		DestinationRoot:    out,
	})

	if res.FilesGenerated != 3 {
		t.Fatalf("FilesGenerated=%d, want 2 individual + 1 combined", res.FilesGenerated)
	}
	combined := listFiles(t, out)[filepath.Join("Store1", "CARGO_COMBINED_Store1.txt")]
	if combined == "" {
		t.Fatalf("combined file missing")
	}
	// Person order preserved in the merge.
	anaIdx := strings.Index(combined, "Ana Torres")
	bobIdx := strings.Index(combined, "Bob Rojas")
	if anaIdx < 0 || bobIdx < 0 || anaIdx > bobIdx {
		t.Fatalf("combined document order wrong: %q", combined)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	gen := newTestGenerator(t)

	run := func() map[string]string {
		out := t.TempDir()
		res := gen.Generate(context.Background(), scenarioWorkbook(), testCatalog(), model.GenerationOptions{
			Kinds:           model.AllKinds(),
			DestinationRoot: out,
		})
		if !res.Success {
			t.Fatalf("Success=false: %s", res.Message)
		}
		return listFiles(t, out)
	}

	first := run()
	second := run()

	firstNames := sortedKeys(first)
	secondNames := sortedKeys(second)
	if strings.Join(firstNames, ";") != strings.Join(secondNames, ";") {
		t.Fatalf("file sets differ:\n%v\n%v", firstNames, secondNames)
	}
	for name := range first {
		if first[name] != second[name] {
			t.Fatalf("file %s differs between runs", name)
		}
	}
}

func TestGenerateSkipsPersonWithoutName(t *testing.T) {
	gen := newTestGenerator(t)
	out := t.TempDir()

	wb := scenarioWorkbook()
	wb.Sheets[0].People = append(wb.Sheets[0].People, storePerson("", "cajero", "99887766", "M"))
	wb.Sheets[0].Garments = append(wb.Sheets[0].Garments, model.GarmentRow{model.GarmentCamisa: 1})

	res := gen.Generate(context.Background(), wb, testCatalog(), model.GenerationOptions{
		Kinds:           []model.DocumentKind{model.KindCargo},
		DestinationRoot: out,
	})

	if res.FilesGenerated != 2 {
		t.Fatalf("FilesGenerated=%d, want 2", res.FilesGenerated)
	}
	if res.PeopleSkipped != 1 {
		t.Fatalf("PeopleSkipped=%d, want 1", res.PeopleSkipped)
	}
	if !res.Success {
		t.Fatalf("per-person failures must not flip Success")
	}
}

// failingRenderer renders normally except for one (person, template) pair.
type failingRenderer struct {
	inner        TextRenderer
	failName     string
	failTemplate string
}

func (r failingRenderer) Render(path string, ctx model.DocumentContext) ([]byte, error) {
	if ctx["NOMBRE"] == r.failName && strings.Contains(path, r.failTemplate) {
		return nil, errors.New("render backend unavailable")
	}
	return r.inner.Render(path, ctx)
}

func (r failingRenderer) Ext() string { return r.inner.Ext() }

type failingMerger struct{}

func (failingMerger) Merge([][]byte) ([]byte, error) {
	return nil, errors.New("merge backend unavailable")
}

func TestGenerateRenderFailureIsolated(t *testing.T) {
	renderer := failingRenderer{failName: "Bob Rojas", failTemplate: "CARGO"}
	gen := NewGenerator(renderer, TextMerger{}, writeTemplates(t), zap.NewNop())
	out := t.TempDir()

	res := gen.Generate(context.Background(), scenarioWorkbook(), testCatalog(), model.GenerationOptions{
		Kinds:           model.AllKinds(),
		DestinationRoot: out,
	})

	if !res.Success {
		t.Fatalf("a render failure must not flip Success: %s", res.Message)
	}
	// 2 people x 2 kinds, minus the one failed document.
	if res.FilesGenerated != 3 {
		t.Fatalf("FilesGenerated=%d, want 3", res.FilesGenerated)
	}
	if !hasSubstring(res.Errors, "render CARGO for Bob Rojas failed") {
		t.Fatalf("expected render error, got %v", res.Errors)
	}

	files := listFiles(t, out)
	if _, ok := files[filepath.Join("Store1", "Bob_Rojas", "CARGO_Bob_Rojas_cajero.txt")]; ok {
		t.Fatalf("failed document written anyway")
	}
	// The same person's other kind still renders.
	if _, ok := files[filepath.Join("Store1", "Bob_Rojas", "AUTORIZACION_Bob_Rojas_cajero.txt")]; !ok {
		t.Fatalf("other kind for same person missing: %v", sortedKeys(files))
	}
	if _, ok := files[filepath.Join("Store1", "Ana_Torres", "CARGO_Ana_Torres_cajero.txt")]; !ok {
		t.Fatalf("other person's document missing: %v", sortedKeys(files))
	}
}

func TestGenerateMergeFailureKeepsIndividualFiles(t *testing.T) {
	gen := NewGenerator(TextRenderer{}, failingMerger{}, writeTemplates(t), zap.NewNop())
	out := t.TempDir()

	res := gen.Generate(context.Background(), scenarioWorkbook(), testCatalog(), model.GenerationOptions{
		Kinds:              []model.DocumentKind{model.KindCargo},
		CombinePerLocation: true,
		DestinationRoot:    out,
	})

	if !res.Success {
		t.Fatalf("a merge failure must not flip Success: %s", res.Message)
	}
	if res.FilesGenerated != 2 {
		t.Fatalf("FilesGenerated=%d, want the 2 individual files", res.FilesGenerated)
	}
	if !hasSubstring(res.Errors, "merge") {
		t.Fatalf("expected merge error, got %v", res.Errors)
	}

	files := listFiles(t, out)
	if _, ok := files[filepath.Join("Store1", "CARGO_COMBINED_Store1.txt")]; ok {
		t.Fatalf("combined file written despite merge failure")
	}
	for _, name := range []string{
		filepath.Join("Store1", "Ana_Torres", "CARGO_Ana_Torres_cajero.txt"),
		filepath.Join("Store1", "Bob_Rojas", "CARGO_Bob_Rojas_cajero.txt"),
	} {
		if _, ok := files[name]; !ok {
			t.Fatalf("individual file %s lost to merge failure: %v", name, sortedKeys(files))
		}
	}
}

func TestGenerateExcludesSheetWithErrors(t *testing.T) {
	gen := newTestGenerator(t)
	out := t.TempDir()

	wb := scenarioWorkbook()
	wb.Sheets[0].Errors = []string{"2 rows missing DNI in column \"DNI\""}

	res := gen.Generate(context.Background(), wb, testCatalog(), model.GenerationOptions{
		Kinds:           []model.DocumentKind{model.KindCargo},
		DestinationRoot: out,
	})

	if res.FilesGenerated != 0 {
		t.Fatalf("FilesGenerated=%d, want 0", res.FilesGenerated)
	}
	if !hasSubstring(res.Errors, "excluded from generation") {
		t.Fatalf("expected exclusion error, got %v", res.Errors)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"Ana Torres":       "Ana_Torres",
		"Plaza Vea / SJL":  "Plaza_Vea__SJL",
		"a-b_c.d":          "a-b_cd",
		"  Peña Rico  ":    "Peña_Rico",
		"<>:\"|?*":         "",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Fatalf("sanitizeName(%q)=%q, want %q", in, got, want)
		}
	}
}

func hasSubstring(messages []string, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
