package common

// NotAvailable is the sentinel the OCR extraction service returns for a
// field it could not read. A response where every field equals this value
// is treated as a failed extraction, not an empty invoice.
const NotAvailable = "N/A"

// DeactivatedCode is the machine-readable code the server puts in a 403
// login response body when the account exists but has been deactivated.
const DeactivatedCode = "account_deactivated"
