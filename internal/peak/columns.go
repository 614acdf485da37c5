package peak

// Column pairs a stable row key with the Thai header the import sheet
// prints. Order here is the export order.
type Column struct {
	Key   string
	Label string
}

// Columns lists every sheet column left to right.
var Columns = []Column{
	{"A_seq", "ลำดับที่*"},
	{"B_doc_date", "วันที่เอกสาร"},
	{"C_reference", "อ้างอิงถึง"},
	{"D_vendor_code", "ผู้รับเงิน/คู่ค้า"},
	{"E_tax_id_13", "เลขทะเบียน 13 หลัก"},
	{"F_branch_5", "เลขสาขา 5 หลัก"},
	{"G_invoice_no", "เลขที่ใบกำกับฯ (ถ้ามี)"},
	{"H_invoice_date", "วันที่ใบกำกับฯ (ถ้ามี)"},
	{"I_tax_purchase_date", "วันที่บันทึกภาษีซื้อ (ถ้ามี)"},
	{"J_price_type", "ประเภทราคา"},
	{"K_account", "บัญชี"},
	{"L_description", "คำอธิบาย"},
	{"M_qty", "จำนวน"},
	{"N_unit_price", "ราคาต่อหน่วย"},
	{"O_vat_rate", "อัตราภาษี"},
	{"P_wht", "หัก ณ ที่จ่าย (ถ้ามี)"},
	{"Q_payment_method", "ชำระโดย"},
	{"R_paid_amount", "จำนวนเงินที่ชำระ"},
	{"S_pnd", "ภ.ง.ด. (ถ้ามี)"},
	{"T_note", "หมายเหตุ"},
	{"U_group", "กลุ่มจัดประเภท"},
}

// Column partitions drive export formatting. Text columns keep leading
// zeros (and in the spreadsheet get an explicit text number format so
// codes like "00000" survive), numeric columns render with two decimal
// places, date columns hold YYYYMMDD strings.
var (
	TextColumns = map[string]bool{
		"A_seq": true, "C_reference": true, "D_vendor_code": true,
		"E_tax_id_13": true, "F_branch_5": true, "G_invoice_no": true,
		"J_price_type": true, "O_vat_rate": true, "S_pnd": true,
		"Q_payment_method": true,
	}
	NumericColumns = map[string]bool{
		"M_qty": true, "N_unit_price": true, "R_paid_amount": true,
	}
	DateColumns = map[string]bool{
		"B_doc_date": true, "H_invoice_date": true, "I_tax_purchase_date": true,
	}
	// Long free-text columns get wrapping in the spreadsheet.
	WrapColumns = map[string]bool{
		"L_description": true, "T_note": true,
	}
)
