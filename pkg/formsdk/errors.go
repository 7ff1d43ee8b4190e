package formsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yasohm/formulaire/pkg/httpx"
)

// Messages sent by the service. They are shown to applicants as is.
const (
	MsgMissingFields     = "جميع الحقول المطلوبة يجب ملؤها"
	MsgInvalidEmail      = "يرجى إدخال عنوان بريد إلكتروني صحيح"
	MsgDuplicateEmail    = "البريد الإلكتروني مسجل بالفعل"
	MsgPhotoType         = "نوع ملف الصورة غير مدعوم. يرجى استخدام: JPG, PNG, GIF, BMP, WebP, أو PDF"
	MsgPhotoSize         = "حجم ملف الصورة كبير جداً (الحد الأقصى: 100 ميجابايت)"
	MsgCertificateType   = "نوع ملف الشهادة غير مدعوم. يرجى استخدام: PDF, DOC, DOCX, JPG, PNG, GIF, BMP, WebP, TXT, أو RTF"
	MsgCertificateSize   = "حجم ملف الشهادة كبير جداً (الحد الأقصى: 100 ميجابايت)"
	MsgPhotoUpload       = "خطأ في رفع ملف الصورة"
	MsgCertificateUpload = "خطأ في رفع ملف الشهادة"
	MsgDatabase          = "خطأ في قاعدة البيانات"
	MsgServer            = "خطأ في الخادم"
	MsgRegistered        = "تم إرسال النموذج بنجاح!"
	MsgListFailed        = "خطأ في تحميل البيانات"
	MsgIDRequired        = "معرف التسجيل مطلوب"
	MsgNotFound          = "التسجيل غير موجود"
	MsgDeleted           = "تم حذف التسجيل بنجاح"
	MsgDeleteFailed      = "خطأ في حذف التسجيل"
	MsgStatsFailed       = "خطأ في حساب الإحصائيات"
	MsgExportFailed      = "خطأ في تصدير البيانات"
	MsgMethodNotAllowed  = "Method not allowed"
)

// APIError is a {success:false, message} answer. The server writes it and
// the client returns it.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("formulaire: %d: %s", e.StatusCode, e.Message)
}

// WriteError writes e as the JSON failure envelope.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteFailure(w, e.StatusCode, e.Message)
}

// NewAPIError creates an APIError.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// parseErrorResponse turns a non-success response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var env MessageResponse
	if err := json.Unmarshal(body, &env); err != nil || env.Message == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
}
