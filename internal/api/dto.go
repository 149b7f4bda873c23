package api

// Request/response shapes of the backend REST surface. Field names follow
// the backend's JSON contract.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenEnvelope struct {
	Token string `json:"token"`
}

type LoginResponse struct {
	Success bool           `json:"success"`
	Token   *TokenEnvelope `json:"token,omitempty"`
	UserID  int64          `json:"userId"`
	Email   string         `json:"email"`
	Nome    string         `json:"nome"`
	Role    string         `json:"role"`
	Message string         `json:"message"`
}

type RegisterRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type PlatformDTO struct {
	IDPlataforma        int64  `json:"idPlataforma"`
	DescricaoPlataforma string `json:"descricaoPlataforma"`
}

type PlatformsResponse struct {
	Success   bool          `json:"success"`
	Platforms []PlatformDTO `json:"platforms"`
	Message   string        `json:"message"`
}

type CoinPackageDTO struct {
	IDMoeda        int64   `json:"idMoeda"`
	PlataformaID   int64   `json:"plataformaId"`
	Quantidade     int64   `json:"quantidade"`
	Valor          float64 `json:"valor"`
	PlataformaNome string  `json:"plataformaNome"`
}

type CoinPackagesResponse struct {
	Success  bool             `json:"success"`
	Packages []CoinPackageDTO `json:"packages"`
	Message  string           `json:"message"`
}

type CreateCartRequest struct {
	IDUser int64 `json:"idUser"`
}

type CreateCartResponse struct {
	Success bool   `json:"success"`
	CartID  int64  `json:"cartId"`
	Message string `json:"message"`
}

type CoinDTO struct {
	IDMoeda    int64   `json:"idMoeda"`
	Quantidade int64   `json:"quantidade"`
	Valor      float64 `json:"valor"`
	Plataforma string  `json:"plataforma"`
}

type CartItemDTO struct {
	IDItem     int64   `json:"idItem"`
	IDCarrinho int64   `json:"idCarrinho"`
	IDMoeda    int64   `json:"idMoeda"`
	Quantidade int     `json:"quantidade"`
	Moeda      CoinDTO `json:"moeda"`
}

type CartResponse struct {
	Success bool          `json:"success"`
	CartID  int64         `json:"cartId"`
	Items   []CartItemDTO `json:"items"`
	Message string        `json:"message"`
}

type AddItemRequest struct {
	IDCarrinho int64 `json:"idCarrinho"`
	IDMoeda    int64 `json:"idMoeda"`
	Quantidade int   `json:"quantidade"`
}

type UpdateQuantityRequest struct {
	Quantidade int `json:"quantidade"`
}

type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CheckoutRequest struct {
	IDCarrinho      int64  `json:"idCarrinho"`
	Email           string `json:"email"`
	MetodoPagamento string `json:"metodoPagamento"`
	TransactionID   string `json:"transactionId,omitempty"`
}

type OrderDTO struct {
	IDPedido   int64   `json:"idPedido"`
	IDUser     int64   `json:"idUser"`
	DataPedido string  `json:"dataPedido"`
	Total      float64 `json:"total"`
	Status     string  `json:"status"`
}

type CheckoutResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Pedido  OrderDTO `json:"pedido"`
}
