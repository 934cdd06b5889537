package edi

import (
	"fmt"

	"github.com/beevik/etree"
)

// ReportFields datos del reporte CODECO en su representación XML (modelo SAP).
type ReportFields struct {
	YardID           string
	Customer         string
	WeighbridgeID    string
	WeighbridgeIDSNO string
	Transporter      string
	ContainerNumber  string
	ContainerSize    string
	Status           string
	VehicleNumber    string
	CreatedDate      string
	CreatedTime      string
	ChangedDate      string
	ChangedTime      string
	CreatedBy        string
}

// Campos fijos del modelo SAP_CODECO_REPORT_MT.
const (
	xmlCompanyCode  = "CIABJ31"
	xmlDesign       = "003"
	xmlItemType     = "02"
	xmlColor        = "#312682"
	xmlCleanType    = "001"
	xmlDeviceNumber = "TD2019031200"
)

// GenerateXML produce el documento SAP_CODECO_REPORT_MT con los namespaces
// del integrador. Los campos estáticos del modelo van fijos; el resto sale
// de los datos del movimiento.
func GenerateXML(fields ReportFields) (string, error) {
	if fields.ContainerNumber == "" {
		return "", fmt.Errorf("codeco xml: número de contenedor requerido")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("n0:SAP_CODECO_REPORT_MT")
	root.CreateAttr("xmlns:n0", "urn:olam.com:IVC:EDIFACT:ONE")
	root.CreateAttr("xmlns:prx", "urn:sap.com:proxy:GRP:/1SAI/TASC3DF160D1FCBB8D1B039:740")
	root.CreateAttr("xmlns:soap-env", "http://schemas.xmlsoap.org/soap/envelope/")

	records := root.CreateElement("Records")

	header := records.CreateElement("Header")
	setText(header, "Company_Code", xmlCompanyCode)
	setText(header, "Plant", fields.YardID)
	setText(header, "Customer", fields.Customer)

	item := records.CreateElement("Item")
	setText(item, "Weighbridge_ID", fields.WeighbridgeID)
	setText(item, "Weighbridge_ID_SNO", fields.WeighbridgeIDSNO)
	setText(item, "Transporter", fields.Transporter)
	setText(item, "Container_Number", fields.ContainerNumber)
	setText(item, "Container_Size", fields.ContainerSize)
	setText(item, "Design", xmlDesign)
	setText(item, "Type", xmlItemType)
	setText(item, "Color", xmlColor)
	setText(item, "Clean_Type", xmlCleanType)
	setText(item, "Status", fields.Status)
	setText(item, "Device_Number", xmlDeviceNumber)
	setText(item, "Vehicle_Number", fields.VehicleNumber)
	setText(item, "Created_Date", fields.CreatedDate)
	setText(item, "Created_Time", fields.CreatedTime)
	setText(item, "Created_By", fields.CreatedBy)
	setText(item, "Changed_Date", fields.ChangedDate)
	setText(item, "Changed_Time", fields.ChangedTime)
	setText(item, "Changed_By", fields.CreatedBy)
	setText(item, "Num_Of_Entries", "1")

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("codeco xml: serializar documento: %w", err)
	}
	return out, nil
}

func setText(parent *etree.Element, tag, value string) {
	parent.CreateElement(tag).SetText(value)
}
