package table

import (
	"context"
	"fmt"

	"github.com/turtacn/ChemDesc-Engine/internal/application/compute"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/descriptor"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/descriptor/whim"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// profileField selects one scalar of the descriptor profile for a column.
type profileField int

const (
	fieldFormula profileField = iota
	fieldWeight
	fieldAtoms
	fieldBonds
	fieldHeavyAtoms
	fieldAcceptors
	fieldDonors
	fieldRotatable
	fieldRings
	fieldAromaticRings
)

// appendedColumn is one output column together with the descriptor that
// fills it: either a profile field or a WHIM scheme.
type appendedColumn struct {
	spec   ColumnSpec
	field  profileField
	scheme whim.Scheme // empty for profile columns
}

// profileColumns lists the appended columns of the scalar profile, in
// output order.
var profileColumns = []struct {
	name  string
	typ   ColumnType
	field profileField
}{
	{"Formula", ColumnString, fieldFormula},
	{"Molecular weight", ColumnDouble, fieldWeight},
	{"Atom count", ColumnInteger, fieldAtoms},
	{"Bond count", ColumnInteger, fieldBonds},
	{"Heavy atoms", ColumnInteger, fieldHeavyAtoms},
	{"H-bond acceptors", ColumnInteger, fieldAcceptors},
	{"H-bond donors", ColumnInteger, fieldDonors},
	{"Rotatable bonds", ColumnInteger, fieldRotatable},
	{"Rings", ColumnInteger, fieldRings},
	{"Aromatic rings", ColumnInteger, fieldAromaticRings},
}

// WhimColumnName returns the output column name for one weighting scheme.
func WhimColumnName(scheme whim.Scheme) string {
	return fmt.Sprintf("WHIM (%s)", scheme)
}

// configuration is a resolved Configure result: the molecule column index
// and the append plan.
type configuration struct {
	input    *TableSpec
	output   *TableSpec
	molIndex int
	warning  string
	appended []appendedColumn
	settings Settings
}

// Configure resolves the molecule column and builds the output spec: the
// input columns followed by the enabled descriptor columns. When settings
// name no column, the first Molecule column is chosen and a warning names
// it; appended column names are uniquified against the input spec.
func Configure(input *TableSpec, settings Settings) (*TableSpec, string, error) {
	cfg, err := configure(input, settings)
	if err != nil {
		return nil, "", err
	}
	return cfg.output, cfg.warning, nil
}

func configure(input *TableSpec, settings Settings) (*configuration, error) {
	if input == nil {
		return nil, errors.New(errors.ErrCodeValidation, "input table spec required")
	}
	if !settings.ComputeProfile && len(settings.WhimSchemes) == 0 {
		return nil, errors.New(errors.ErrCodeTableSettingsInvalid, "no descriptor output enabled")
	}

	cfg := &configuration{input: input, settings: settings, molIndex: -1}

	if settings.MoleculeColumn != "" {
		i, ok := input.Find(settings.MoleculeColumn)
		if !ok {
			return nil, errors.New(errors.ErrCodeTableColumnNotFound, "molecule column does not exist").
				WithDetailf("column=%q", settings.MoleculeColumn)
		}
		if input.Column(i).Type != ColumnMolecule {
			return nil, errors.New(errors.ErrCodeTableColumnType, "column does not contain molecule cells").
				WithDetailf("column=%q type=%s", settings.MoleculeColumn, input.Column(i).Type)
		}
		cfg.molIndex = i
	} else {
		for i, col := range input.Columns() {
			if col.Type == ColumnMolecule {
				cfg.molIndex = i
				cfg.warning = fmt.Sprintf("Column %q automatically chosen as molecule column", col.Name)
				break
			}
		}
		if cfg.molIndex == -1 {
			return nil, errors.New(errors.ErrCodeTableNoMoleculeColumn, "input table carries no molecule column")
		}
	}

	if settings.ComputeProfile {
		for _, pc := range profileColumns {
			cfg.appended = append(cfg.appended, appendedColumn{
				spec:  ColumnSpec{Name: input.UniqueName(pc.name), Type: pc.typ},
				field: pc.field,
			})
		}
	}
	for _, scheme := range settings.WhimSchemes {
		if _, err := whim.ParseScheme(string(scheme)); err != nil {
			return nil, err
		}
		cfg.appended = append(cfg.appended, appendedColumn{
			spec:   ColumnSpec{Name: input.UniqueName(WhimColumnName(scheme)), Type: ColumnDoubleList},
			scheme: scheme,
		})
	}

	specs := make([]ColumnSpec, 0, len(cfg.appended))
	for _, ac := range cfg.appended {
		specs = append(specs, ac.spec)
	}
	output, err := input.Append(specs...)
	if err != nil {
		return nil, err
	}
	cfg.output = output
	return cfg, nil
}

// Rearranger computes the appended descriptor cells for one row at a time.
// It holds no per-row state and is safe for concurrent use.
type Rearranger struct {
	cfg     *configuration
	service *compute.Service
	logger  logging.Logger
}

// NewRearranger configures the transform against the input spec. The
// compute service supplies the actual descriptor evaluation.
func NewRearranger(input *TableSpec, settings Settings, service *compute.Service, logger logging.Logger) (*Rearranger, error) {
	if service == nil {
		return nil, errors.New(errors.ErrCodeValidation, "compute service required")
	}
	cfg, err := configure(input, settings)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Rearranger{cfg: cfg, service: service, logger: logger.Named("table")}, nil
}

// OutputSpec returns the full output table spec.
func (r *Rearranger) OutputSpec() *TableSpec {
	return r.cfg.output
}

// Warning returns the auto-detection warning, empty when the settings
// named the column explicitly.
func (r *Rearranger) Warning() string {
	return r.cfg.warning
}

// Append computes the appended cells for one input row and returns the
// full output row. A Missing molecule cell yields Missing cells in every
// appended column; a malformed molecule payload is an error.
func (r *Rearranger) Append(ctx context.Context, row Row) (Row, error) {
	if len(row) != r.cfg.input.NumColumns() {
		return nil, errors.New(errors.ErrCodeValidation, "row width does not match the input spec").
			WithDetailf("cells=%d columns=%d", len(row), r.cfg.input.NumColumns())
	}

	out := make(Row, 0, r.cfg.output.NumColumns())
	out = append(out, row...)

	molCell := row[r.cfg.molIndex]
	if molCell.IsMissing() {
		for range r.cfg.appended {
			out = append(out, MissingCell())
		}
		return out, nil
	}

	dto, err := molCell.Molecule()
	if err != nil {
		return nil, err
	}
	m, err := dto.ToGraph()
	if err != nil {
		return nil, err
	}

	var profile *descriptor.Profile
	if r.cfg.settings.ComputeProfile {
		profile, err = r.service.Profile(ctx, m)
		if err != nil {
			return nil, err
		}
	}
	var whimResults map[whim.Scheme]*whim.Result
	if len(r.cfg.settings.WhimSchemes) > 0 {
		whimResults, err = r.service.Whim(ctx, m, r.cfg.settings.WhimSchemes)
		if err != nil {
			return nil, err
		}
	}

	for _, ac := range r.cfg.appended {
		if ac.scheme != "" {
			out = append(out, DoubleListCell(whimVector(whimResults[ac.scheme])))
			continue
		}
		out = append(out, profileCell(profile, ac.field))
	}
	return out, nil
}

// whimVector flattens a WHIM result into its canonical 9-value vector.
func whimVector(r *whim.Result) []float64 {
	return []float64{r.L1, r.L2, r.L3, r.Nu1, r.Nu2, r.T, r.A, r.V, r.K}
}

func profileCell(p *descriptor.Profile, field profileField) Cell {
	switch field {
	case fieldFormula:
		return StringCell(p.Formula)
	case fieldWeight:
		return DoubleCell(p.MolecularWeight)
	case fieldAtoms:
		return IntegerCell(int64(p.AtomCount))
	case fieldBonds:
		return IntegerCell(int64(p.BondCount))
	case fieldHeavyAtoms:
		return IntegerCell(int64(p.HeavyAtoms))
	case fieldAcceptors:
		return IntegerCell(int64(p.Acceptors))
	case fieldDonors:
		return IntegerCell(int64(p.Donors))
	case fieldRotatable:
		return IntegerCell(int64(p.RotatableBonds))
	case fieldRings:
		return IntegerCell(int64(p.Rings))
	default:
		return IntegerCell(int64(p.AromaticRings))
	}
}
