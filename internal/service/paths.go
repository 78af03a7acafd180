package service

import "strconv"

// Client routes that actions navigate to.
const (
	PathLogin          = "/"
	PathSignup         = "/signup"
	PathCatalog        = "/homepage"
	PathCart           = "/cart"
	PathAdmin          = "/admin"
	PathHistory        = "/history"
	PathPayment        = "/payment"
	PathPaymentSuccess = "/paymentSuccess"
	PathProductDetail  = "/detailBarang"
	PathProductEditor  = "/product"
)

func ProductDetailPath(id int64) string {
	return PathProductDetail + "/" + strconv.FormatInt(id, 10)
}

func ProductEditorPath(id int64) string {
	if id == 0 {
		return PathProductEditor
	}
	return PathProductEditor + "/" + strconv.FormatInt(id, 10)
}
