// Package i18n resolves the response language and holds the en/ar message catalog.
package i18n

import (
	"golang.org/x/text/language"
)

// Lang supported response language.
type Lang string

const (
	English Lang = "en"
	Arabic  Lang = "ar"
)

var (
	supported = []Lang{English, Arabic}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Arabic})
)

// Negotiate picks the best supported language for an Accept-Language header.
// Anything unparseable or unmatched yields English.
func Negotiate(acceptLanguage string) Lang {
	if acceptLanguage == "" {
		return English
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return English
	}
	return supported[idx]
}

// Message keys.
const (
	MsgInvalidInput       = "invalid_input"
	MsgInvalidTenant      = "invalid_tenant"
	MsgMissingToken       = "missing_token"
	MsgInvalidToken       = "invalid_token"
	MsgInvalidCredentials = "invalid_credentials"
	MsgForbidden          = "forbidden"
	MsgNotFound           = "not_found"
	MsgCompanyNotFound    = "company_not_found"
	MsgCustomerNotFound   = "customer_not_found"
	MsgItemNotFound       = "item_not_found"
	MsgInvoiceNotFound    = "invoice_not_found"
	MsgRoleNotFound       = "role_not_found"
	MsgUserNotFound       = "user_not_found"
	MsgDuplicate          = "duplicate"
	MsgConflict           = "conflict"
	MsgInUse              = "in_use"
	MsgInternal           = "internal"
)

var catalog = map[Lang]map[string]string{
	English: {
		MsgInvalidInput:       "The request contains invalid data.",
		MsgInvalidTenant:      "A valid company id is required.",
		MsgMissingToken:       "Authorization token is required.",
		MsgInvalidToken:       "Authorization token is invalid or expired.",
		MsgInvalidCredentials: "Invalid credentials.",
		MsgForbidden:          "You are not allowed to perform this action.",
		MsgNotFound:           "Resource not found.",
		MsgCompanyNotFound:    "Company not found.",
		MsgCustomerNotFound:   "Customer not found.",
		MsgItemNotFound:       "Item not found.",
		MsgInvoiceNotFound:    "Invoice not found.",
		MsgRoleNotFound:       "Role not found.",
		MsgUserNotFound:       "User not found.",
		MsgDuplicate:          "A record with the same values already exists.",
		MsgConflict:           "The request conflicts with the current state.",
		MsgInUse:              "The record is still referenced and cannot be deleted.",
		MsgInternal:           "An unexpected error occurred.",
	},
	Arabic: {
		MsgInvalidInput:       "الطلب يحتوي على بيانات غير صالحة.",
		MsgInvalidTenant:      "معرف الشركة مطلوب وصالح.",
		MsgMissingToken:       "رمز التفويض مطلوب.",
		MsgInvalidToken:       "رمز التفويض غير صالح أو منتهي الصلاحية.",
		MsgInvalidCredentials: "بيانات الاعتماد غير صحيحة.",
		MsgForbidden:          "غير مسموح لك بتنفيذ هذا الإجراء.",
		MsgNotFound:           "المورد غير موجود.",
		MsgCompanyNotFound:    "الشركة غير موجودة.",
		MsgCustomerNotFound:   "العميل غير موجود.",
		MsgItemNotFound:       "الصنف غير موجود.",
		MsgInvoiceNotFound:    "الفاتورة غير موجودة.",
		MsgRoleNotFound:       "الدور غير موجود.",
		MsgUserNotFound:       "المستخدم غير موجود.",
		MsgDuplicate:          "يوجد سجل بنفس القيم بالفعل.",
		MsgConflict:           "الطلب يتعارض مع الحالة الحالية.",
		MsgInUse:              "السجل مرتبط ببيانات أخرى ولا يمكن حذفه.",
		MsgInternal:           "حدث خطأ غير متوقع.",
	},
}

// T returns the message for key in lang, falling back to English, then to the key itself.
func T(lang Lang, key string) string {
	if m, ok := catalog[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := catalog[English][key]; ok {
		return s
	}
	return key
}
