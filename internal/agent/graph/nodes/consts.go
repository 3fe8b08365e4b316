package nodes

// Graph node keys.
const (
	NodeInputConverter = "InputConverter"
	NodeRouter         = "Router"
	NodeDispatcher     = "ToolDispatcher"
	NodePolicyGuard    = "PolicyGuard"
	NodeResponder      = "Responder"
)

// Fixed replies.
const (
	MsgOptionsHeader  = "Here are some options:"
	MsgNoMatches      = "No matching products found."
	MsgCancelled      = "Your order was successfully cancelled."
	MsgCancelDeniedFm = "Cancellation not allowed (%s). You can: update shipping address, request store credit, or contact support."
	MsgGuardrail      = "Sorry, I can’t provide discount codes. You can join our newsletter or check first-order perks."
)
