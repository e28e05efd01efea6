package context

type Key string

const (
	Params    Key = "params"
	Route     Key = "route"
	RequestID Key = "request_id"
	ClientIP  Key = "client_ip"
)
