package http

import "time"

type createOrderRequest struct {
	OrderNumber string `json:"orderNumber"`
}

type createOrderResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type changedOrder struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type changeStatusResponse struct {
	Success bool         `json:"success"`
	Order   changedOrder `json:"order"`
}

type bulkStatusRequest struct {
	OrderIDs []string `json:"orderIds"`
	Status   string   `json:"status"`
}

type bulkFailure struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

type bulkStatusResponse struct {
	Success int           `json:"success"`
	Failed  int           `json:"failed"`
	Errors  []bulkFailure `json:"errors"`
}

type printFileRequest struct {
	SourceKey string `json:"sourceKey"`
	Size      string `json:"size"`
	Paper     string `json:"paper"`
}

type printFileResponse struct {
	Key      string `json:"key"`
	WidthPx  int    `json:"widthPx"`
	HeightPx int    `json:"heightPx"`
	DPI      int    `json:"dpi"`
}

type statusOption struct {
	Status string `json:"status"`
	Label  string `json:"label"`
}

type historyItem struct {
	Status         string    `json:"status"`
	Label          string    `json:"label"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	ChangedBy      string    `json:"changedBy"`
	ChangedAt      time.Time `json:"changedAt"`
	Note           string    `json:"note,omitempty"`
}

type orderStatusResponse struct {
	ID                string         `json:"id"`
	OrderNumber       string         `json:"orderNumber"`
	Status            string         `json:"status"`
	StatusLabel       string         `json:"statusLabel"`
	Final             bool           `json:"final"`
	Allowed           []statusOption `json:"allowed"`
	History           []historyItem  `json:"history"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	EstimatedDelivery *time.Time     `json:"estimatedDelivery,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Final   bool   `json:"final,omitempty"`
}

type errorResponse struct {
	Success bool        `json:"success"`
	Error   errorDetail `json:"error"`
}
