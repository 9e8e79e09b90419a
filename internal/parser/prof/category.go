package prof

import (
	"sort"

	"github.com/hpcprof/pkg/model"
)

// PA event categories. Matching is case-sensitive.
const (
	CategoryCache        = "Cache"
	CategoryInstructions = "Instructions"
	CategoryMemAccess    = "MEM_access"
	CategoryPerformance  = "Performance"
	CategoryStatistics   = "Statistics"
)

type categoryEntry struct {
	width    int
	infoType model.InfoType
}

var categoryTable = map[string]categoryEntry{
	CategoryCache:        {width: 10, infoType: model.InfoTypeEventCounterCache},
	CategoryInstructions: {width: 9, infoType: model.InfoTypeEventCounterInstructions},
	CategoryMemAccess:    {width: 10, infoType: model.InfoTypeEventCounterMemAccess},
	CategoryPerformance:  {width: 10, infoType: model.InfoTypeEventCounterPerformance},
	CategoryStatistics:   {width: 10, infoType: model.InfoTypeEventCounterStatistics},
}

// SampleWidth returns the number of float64 samples per thread for the
// category name.
func SampleWidth(name string) (int, error) {
	e, ok := categoryTable[name]
	if !ok {
		return 0, &CategoryError{Name: name}
	}
	return e.width, nil
}

// CategoryInfoType returns the presentation table for the category name.
func CategoryInfoType(name string) (model.InfoType, error) {
	e, ok := categoryTable[name]
	if !ok {
		return model.InfoTypeNone, &CategoryError{Name: name}
	}
	return e.infoType, nil
}

// Categories returns the known category names in sorted order.
func Categories() []string {
	names := make([]string, 0, len(categoryTable))
	for name := range categoryTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
