package catalog

// Catalog is an indexed, read-only view over a validated Document.
// It is safe for concurrent use because nothing mutates it after New returns.
type Catalog struct {
	doc Document

	categories   map[string]int
	models       map[string]map[string]int
	datasetTypes map[string]int
	tasks        map[string]int
	regions      map[string]int
	hardware     map[string]int
}

// New validates doc and builds a Catalog from a private copy of it.
// A blank category workload is normalized to WorkloadDataPoints before validation.
func New(doc Document) (*Catalog, error) {
	doc = cloneDocument(doc)
	for i := range doc.Categories {
		if doc.Categories[i].Workload == "" {
			doc.Categories[i].Workload = WorkloadDataPoints
		}
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}

	c := &Catalog{
		doc:          doc,
		categories:   make(map[string]int, len(doc.Categories)),
		models:       make(map[string]map[string]int, len(doc.Categories)),
		datasetTypes: make(map[string]int, len(doc.DatasetTypes)),
		tasks:        make(map[string]int, len(doc.Tasks)),
		regions:      make(map[string]int, len(doc.Regions)),
		hardware:     make(map[string]int, len(doc.Hardware)),
	}

	for i, cat := range doc.Categories {
		c.categories[cat.Key] = i
		idx := make(map[string]int, len(cat.Models))
		for j, m := range cat.Models {
			idx[m.Key] = j
		}
		c.models[cat.Key] = idx
	}
	for i, d := range doc.DatasetTypes {
		c.datasetTypes[d.Key] = i
	}
	for i, t := range doc.Tasks {
		c.tasks[t.Key] = i
	}
	for i, r := range doc.Regions {
		c.regions[r.Key] = i
	}
	for i, h := range doc.Hardware {
		c.hardware[h.Key] = i
	}

	return c, nil
}

// Version returns the catalog schema version, or "" when the document has none.
func (c *Catalog) Version() string {
	return c.doc.Version
}

// Category returns the category with the given key.
// The returned value shares nothing with the catalog; its Models slice is a copy.
func (c *Catalog) Category(key string) (Category, bool) {
	i, ok := c.categories[key]
	if !ok {
		return Category{}, false
	}
	cat := c.doc.Categories[i]
	cat.Models = append([]Model(nil), cat.Models...)
	return cat, true
}

// Model returns the model with the given key inside the given category.
func (c *Catalog) Model(category, key string) (Model, bool) {
	idx, ok := c.models[category]
	if !ok {
		return Model{}, false
	}
	j, ok := idx[key]
	if !ok {
		return Model{}, false
	}
	return c.doc.Categories[c.categories[category]].Models[j], true
}

// DatasetType returns the dataset type with the given key.
func (c *Catalog) DatasetType(key string) (DatasetType, bool) {
	i, ok := c.datasetTypes[key]
	if !ok {
		return DatasetType{}, false
	}
	return c.doc.DatasetTypes[i], true
}

// Task returns the ML task with the given key.
func (c *Catalog) Task(key string) (Task, bool) {
	i, ok := c.tasks[key]
	if !ok {
		return Task{}, false
	}
	return c.doc.Tasks[i], true
}

// Region returns the region with the given key.
func (c *Catalog) Region(key string) (Region, bool) {
	i, ok := c.regions[key]
	if !ok {
		return Region{}, false
	}
	return c.doc.Regions[i], true
}

// Hardware returns the hardware profile with the given key.
func (c *Catalog) Hardware(key string) (Hardware, bool) {
	i, ok := c.hardware[key]
	if !ok {
		return Hardware{}, false
	}
	return c.doc.Hardware[i], true
}

// Categories returns every category in catalog order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.doc.Categories))
	for i, cat := range c.doc.Categories {
		cat.Models = append([]Model(nil), cat.Models...)
		out[i] = cat
	}
	return out
}

// Models returns the models of a category in catalog order, or nil for an unknown category.
func (c *Catalog) Models(category string) []Model {
	i, ok := c.categories[category]
	if !ok {
		return nil
	}
	return append([]Model(nil), c.doc.Categories[i].Models...)
}

// DatasetTypes returns every dataset type in catalog order.
func (c *Catalog) DatasetTypes() []DatasetType {
	return append([]DatasetType(nil), c.doc.DatasetTypes...)
}

// Tasks returns every ML task in catalog order.
func (c *Catalog) Tasks() []Task {
	return append([]Task(nil), c.doc.Tasks...)
}

// Regions returns every region in catalog order.
func (c *Catalog) Regions() []Region {
	return append([]Region(nil), c.doc.Regions...)
}

// HardwareProfiles returns every hardware profile in catalog order.
func (c *Catalog) HardwareProfiles() []Hardware {
	return append([]Hardware(nil), c.doc.Hardware...)
}

// Document returns a deep copy of the catalog contents, suitable for export or Merge.
func (c *Catalog) Document() Document {
	return cloneDocument(c.doc)
}

func cloneDocument(doc Document) Document {
	out := Document{
		Version:      doc.Version,
		DatasetTypes: append([]DatasetType(nil), doc.DatasetTypes...),
		Tasks:        append([]Task(nil), doc.Tasks...),
		Regions:      append([]Region(nil), doc.Regions...),
		Hardware:     append([]Hardware(nil), doc.Hardware...),
	}
	if doc.Categories != nil {
		out.Categories = make([]Category, len(doc.Categories))
		for i, cat := range doc.Categories {
			cat.Models = append([]Model(nil), cat.Models...)
			out.Categories[i] = cat
		}
	}
	return out
}
