package domain

// Channel identifies a notification delivery channel. The set is closed:
// dispatch goes through a lookup table and an unregistered channel is a
// typed error, not a logged shrug.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

// PaymentMethod identifies a supported payment processor.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentPaypal     PaymentMethod = "paypal"
)
