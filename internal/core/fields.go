package core

// MenuFieldSpecs defines the accepted input fields for a menu item, in form
// and CSV column order. Stock and Addons may be omitted.
var MenuFieldSpecs = []FieldSpec{
	{Name: "Name", Key: "name", Type: FieldText, Required: true},
	{Name: "Category", Key: "category", Type: FieldEnum, Required: true, EnumValues: categoryNames()},
	{Name: "Price", Key: "price", Type: FieldNumeric, Required: true},
	{Name: "Description", Key: "description", Type: FieldText, Required: true},
	{Name: "SKU", Key: "sku", Type: FieldText, Required: true},
	{Name: "Stock", Key: "stock", Type: FieldEnum, EnumValues: []string{"instock", "outofstock", "onbackorder"}},
	{Name: "Addons", Key: "addons", Type: FieldEnum, EnumValues: []string{"none", "protein", "cheesesteak"}},
}

// MenuColumns returns the CSV header for menu import files.
func MenuColumns() []string {
	cols := make([]string, len(MenuFieldSpecs))
	for i, spec := range MenuFieldSpecs {
		cols[i] = spec.Name
	}
	return cols
}

func categoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}
