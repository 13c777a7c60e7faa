package pipeline

import "github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"

// FieldSpec describes one column of the destination import template.
type FieldSpec struct {
	Name     string
	Required bool   // a record with this field empty is dropped
	Default  string // value used when the source has no mapping
}

// MDSFSchema returns the destination template's columns in the exact order
// the import expects. Name, DisplayName and Type are hard requirements of
// the importer; everything else defaults to empty or the importer's
// documented default.
func MDSFSchema() []FieldSpec {
	return []FieldSpec{
		{Name: "Name", Required: true},
		{Name: "DisplayName", Required: true},
		{Name: "Type", Required: true},
		{Name: "ProductId"},
		{Name: "BriefDescription"},
		{Name: "Icon"},
		{Name: "LongDescription"},
		{Name: "DetailImage"},
		{Name: "Active"},
		{Name: "TurnAroundTime"},
		{Name: "TurnAroundTimeUnit"},
		{Name: "QuantityType"},
		{Name: "MaxOrderQuantityPermitted"},
		{Name: "Quantities"},
		{Name: "AllowBuyerToEditMultipleQuantity", Default: "FALSE"},
		{Name: "EnforceMaxQuantityPermittedInCart", Default: "FALSE"},
		{Name: "OrderQuantitiesAllowSplitAcrossMultipleRecipients", Default: "FALSE"},
		{Name: "DescriptionFooter"},
		{Name: "ProductNotes"},
		{Name: "KeyWords"},
		{Name: "SEOTitle"},
		{Name: "UrlSlug"},
		{Name: "MetaDescription"},
		{Name: "MobileSupported"},
		{Name: "BuyerDeliverableType", Default: "Print"},
		{Name: "WeightValue"},
		{Name: "WeightUnit"},
		{Name: "WidthValue"},
		{Name: "LengthValue"},
		{Name: "HeightValue"},
		{Name: "DimensionUnit"},
		{Name: "MaxQuantityPerSubcontainer"},
		{Name: "ShipItemSeparately"},
		{Name: "ContentFile"},
		{Name: "TicketTemplate"},
		{Name: "ProductNameToCopySecuritySettings"},
		{Name: "MISItemTemplate"},
		{Name: "SmartCanvasTemplateName"},
		{Name: "DynamicPreview"},
		{Name: "AllowBuyerConfiguration"},
		{Name: "StartDate"},
		{Name: "EndDate"},
		{Name: "PickLocation"},
		{Name: "WareHouseName"},
		{Name: "IsHighValueProduct"},
		{Name: "HasUniqueSkid"},
		{Name: "PickStrategy"},
		{Name: "NotifyOnInventoryReceive"},
		{Name: "CustomerRep"},
		{Name: "SalesRep"},
		{Name: "PhysicalCountInterval"},
		{Name: "StorageType"},
		{Name: "AllowBackOrder"},
		{Name: "BackOrderRule"},
		{Name: "BackOrderMaxQty"},
		{Name: "ShowInventoryWhenBackOrderAllowed"},
		{Name: "Threshold"},
		{Name: "Emails"},
		{Name: "Storefront/Categories"},
		{Name: "Barcode"},
		{Name: "EnableProductReturn"},
		{Name: "BuyNowButtonDescription"},
		{Name: "UseNewSmartCanvas"},
	}
}

// fieldMapping maps uStore export columns onto MDSF template columns where
// the names differ or simply carry over.
var fieldMapping = map[string]string{
	"Name":                      "Name",
	"DisplayName":               "DisplayName",
	"Type":                      "Type",
	"SKU/ProductId":             "ProductId",
	"BriefDescription":          "BriefDescription",
	"Icon":                      "Icon",
	"LongDescription":           "LongDescription",
	"DetailImage":               "DetailImage",
	"Active":                    "Active",
	"QuantityType":              "QuantityType",
	"MaxOrderQuantityPermitted": "MaxOrderQuantityPermitted",
	"KeyWords":                  "KeyWords",
	"SEOTitle":                  "SEOTitle",
	"MetaDescription":           "MetaDescription",
	"MobileSupported":           "MobileSupported",
	"ContentFile":               "ContentFile",
	"TicketTemplate":            "TicketTemplate",
	// Different capitalization between the two systems.
	"StoreFront/Categories": "Storefront/Categories",
}

// HelperColumns are uStore columns kept past mapping because packaging
// still needs them to locate assets. They never reach the final CSV.
var HelperColumns = []string{model.ColProductID, model.ColStoreID, model.ColStoreName}
