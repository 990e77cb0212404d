package catalog

// CodeEntry is one row of a code table as served by the code endpoints.
type CodeEntry struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"codeNm" yaml:"codeNm"`
}

// CodeTable bundles the four code lists the editor offers.
type CodeTable struct {
	DisplayTypes []CodeEntry `json:"displayTypes"`
	Themes       []CodeEntry `json:"themes"`
	Locations    []CodeEntry `json:"locations"`
	Templates    []CodeEntry `json:"templates"`
}

// Builtin returns the hardcoded code table used whenever remote loading fails.
func Builtin() CodeTable {
	return CodeTable{
		DisplayTypes: []CodeEntry{
			{Code: string(Bar), Name: "Bar"},
			{Code: string(Box), Name: "Box"},
			{Code: string(Slide), Name: "Slide"},
			{Code: string(Star), Name: "Star rating"},
		},
		Themes: []CodeEntry{
			{Code: "T1", Name: "Bar image"},
			{Code: "T2", Name: "Bar text"},
			{Code: "T3", Name: "Bar image and text"},
			{Code: "T4", Name: "Box image"},
			{Code: "T5", Name: "Box image and button"},
			{Code: "T6", Name: "Box image and two buttons"},
			{Code: "T7", Name: "Box image and text"},
			{Code: "T8", Name: "Box image, text and button"},
			{Code: "T9", Name: "Box image, text and two buttons"},
			{Code: "T10", Name: "Slide image"},
			{Code: "T11", Name: "Slide image and button"},
			{Code: "T12", Name: "Slide image and two buttons"},
			{Code: "T13", Name: "Slide image and text"},
			{Code: "T14", Name: "Slide image, text and button"},
			{Code: "T15", Name: "Slide image, text and two buttons"},
			{Code: "T16", Name: "Star rating"},
		},
		Locations: []CodeEntry{
			{Code: string(Top), Name: "Top"},
			{Code: string(Middle), Name: "Middle"},
			{Code: string(Bottom), Name: "Bottom"},
		},
		Templates: []CodeEntry{
			{Code: "M1", Name: "Image"},
			{Code: "M2", Name: "Text"},
			{Code: "M3", Name: "Image and text"},
			{Code: "M4", Name: "Image and button"},
			{Code: "M5", Name: "Image and two buttons"},
			{Code: "M6", Name: "Image, text and button"},
			{Code: "M7", Name: "Image, text and two buttons"},
			{Code: "M8", Name: "Rating"},
		},
	}
}
