package scorecard

import (
	"errors"
	"fmt"
)

// ViewMode selects between the chart dashboard and the comparison table.
type ViewMode string

const (
	ViewCharts ViewMode = "charts"
	ViewTable  ViewMode = "table"
)

// Selection is the full selector state: base year, category, scope and
// the chart/table toggle. There is exactly one live Selection per
// Controller; render passes only ever read it.
type Selection struct {
	Year     int
	Category Category
	Scope    string
	View     ViewMode
}

// SelectionUpdate carries a partial selector change; nil fields leave the
// current value untouched.
type SelectionUpdate struct {
	Year     *int
	Category *Category
	Scope    *string
	View     *ViewMode
}

// RenderPlan is the complete output of one render pass: what the host
// should paint, host-independent. Identical selections always produce
// identical plans.
type RenderPlan struct {
	Title    string
	Subtitle string
	Charts   []ChartSpec
	Table    *TableSpec
	View     ViewMode
}

// Controller owns the selection state and turns selector changes into
// render plans. It is the single writer of its Selection; all mutation
// funnels through Apply.
type Controller struct {
	dataset Dataset
	sel     Selection
	plan    RenderPlan
	hasPlan bool
}

// NewController initializes the selection to the dataset defaults: the
// national scope at its newest year, overview category, chart view.
func NewController(ds Dataset) *Controller {
	c := &Controller{
		dataset: ds,
		sel: Selection{
			Year:     ds.LatestYear(ScopeNational),
			Category: CategoryOverview,
			Scope:    ScopeNational,
			View:     ViewCharts,
		},
	}
	c.plan, _ = c.render(c.sel)
	c.hasPlan = true
	return c
}

// Selection returns a copy of the current selector state.
func (c *Controller) Selection() Selection { return c.sel }

// Dataset returns the immutable dataset the controller renders from.
func (c *Controller) Dataset() Dataset { return c.dataset }

// ReplaceDataset swaps in a freshly loaded dataset (hot reload) and
// re-renders the current selection against it.
func (c *Controller) ReplaceDataset(ds Dataset) RenderPlan {
	c.dataset = ds
	if plan, err := c.render(c.sel); err == nil {
		c.plan = plan
	}
	return c.plan
}

// Apply merges the update into the selection and performs one render
// pass. When the new selection resolves to nothing (ErrNotAvailable) the
// selection still advances but the previous plan is returned unchanged,
// so the host keeps showing what it already has.
func (c *Controller) Apply(update SelectionUpdate) RenderPlan {
	next := c.sel
	if update.Year != nil {
		next.Year = *update.Year
	}
	if update.Category != nil {
		next.Category = *update.Category
	}
	if update.Scope != nil {
		next.Scope = *update.Scope
	}
	if update.View != nil {
		next.View = *update.View
	}
	c.sel = next

	plan, err := c.render(next)
	if err != nil {
		if errors.Is(err, ErrNotAvailable) && c.hasPlan {
			return c.plan
		}
		return c.plan
	}
	c.plan = plan
	c.hasPlan = true
	return c.plan
}

// Plan returns the last successfully rendered plan.
func (c *Controller) Plan() RenderPlan { return c.plan }

// ScopeLabel maps the national sentinel to its display label; state codes
// display verbatim.
func ScopeLabel(scope string) string {
	if scope == ScopeNational {
		return "National"
	}
	return scope
}

func (c *Controller) render(sel Selection) (RenderPlan, error) {
	view, err := Resolve(c.dataset, sel.Scope, sel.Year, sel.Category)
	if err != nil {
		return RenderPlan{}, err
	}

	plan := RenderPlan{
		Title:    fmt.Sprintf("UI Overpayments Report — %d", sel.Year),
		Subtitle: fmt.Sprintf("(%s, %s)", ScopeLabel(sel.Scope), sel.Category.Label()),
		View:     sel.View,
	}

	if sel.View == ViewTable {
		table := BuildTable(view.Table, sel.Year)
		plan.Table = &table
		return plan, nil
	}

	plan.Charts = BuildCharts(view, false)
	return plan, nil
}
