package protocol

// API names a remote operation.
type API string

const (
	APICreateAccount           API = "CreateAccount"
	APILogin                   API = "Login"
	APILogout                  API = "Logout"
	APIValidateAndTouchSession API = "ValidateAndTouchSession"
	APIGetSellerRating         API = "GetSellerRating"
	APIUpdateSellerFeedback    API = "UpdateSellerFeedback"
	APIGetBuyerPurchases       API = "GetBuyerPurchases"

	APIRegisterItemForSale API = "RegisterItemForSale"
	APIChangeItemPrice     API = "ChangeItemPrice"
	APIUpdateUnitsForSale  API = "UpdateUnitsForSale"
	APIDisplayItemsForSale API = "DisplayItemsForSale"
	APISearchItemsForSale  API = "SearchItemsForSale"
	APIGetItem             API = "GetItem"
	APIAddItemToCart       API = "AddItemToCart"
	APIRemoveItemFromCart  API = "RemoveItemFromCart"
	APISaveCart            API = "SaveCart"
	APIClearCart           API = "ClearCart"
	APIDisplayCart         API = "DisplayCart"
	APIProvideFeedback     API = "ProvideFeedback"
	APILogoutCleanup       API = "LogoutCleanup"
	APIMakePurchase        API = "MakePurchase"
)

// Service tags carried in Request.Service.
const (
	ServiceCustomerDB     = "customer_db"
	ServiceProductDB      = "product_db"
	ServiceBuyerFrontend  = "buyer_frontend"
	ServiceSellerFrontend = "seller_frontend"
)

// Role hints carried in Request.Role.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// CustomerAPIs is the closed set served by the account/session store.
var CustomerAPIs = []API{
	APICreateAccount,
	APILogin,
	APILogout,
	APIValidateAndTouchSession,
	APIGetSellerRating,
	APIUpdateSellerFeedback,
	APIGetBuyerPurchases,
}

// ProductAPIs is the closed set served by the catalog/cart store.
var ProductAPIs = []API{
	APIRegisterItemForSale,
	APIChangeItemPrice,
	APIUpdateUnitsForSale,
	APIDisplayItemsForSale,
	APISearchItemsForSale,
	APIGetItem,
	APIAddItemToCart,
	APIRemoveItemFromCart,
	APISaveCart,
	APIClearCart,
	APIDisplayCart,
	APIProvideFeedback,
	APILogoutCleanup,
}

// BuyerAPIs is the closed set served by the buyer frontend.
var BuyerAPIs = []API{
	APICreateAccount,
	APILogin,
	APILogout,
	APISearchItemsForSale,
	APIGetItem,
	APIAddItemToCart,
	APIRemoveItemFromCart,
	APISaveCart,
	APIClearCart,
	APIDisplayCart,
	APIProvideFeedback,
	APIGetSellerRating,
	APIGetBuyerPurchases,
	APIMakePurchase,
}

// SellerAPIs is the closed set served by the seller frontend.
var SellerAPIs = []API{
	APICreateAccount,
	APILogin,
	APILogout,
	APIGetSellerRating,
	APIRegisterItemForSale,
	APIChangeItemPrice,
	APIUpdateUnitsForSale,
	APIDisplayItemsForSale,
}
