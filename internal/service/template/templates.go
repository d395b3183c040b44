package template

import "github.com/KasumiMercury/primind-booking-reminder/internal/domain"

type reminderTemplate struct {
	Subject string
	Body    string
}

var builtinTemplates = map[domain.ReminderType]reminderTemplate{
	domain.ReminderSafariBooking: {
		Subject: "Safari booking reminder: {client_name} arriving {check_in_date}",
		Body: `<p>Dear {agent_name},</p>
<p>Your client <strong>{client_name}</strong> checks in on <strong>{check_in_date}</strong> and checks out on <strong>{check_out_date}</strong>.</p>
<p>If your client would like to join a safari during the stay, now is the time to book it so we can secure vehicles and guides.</p>
<p>Kind regards,<br>Reservations Team</p>`,
	},
	domain.ReminderReconfirmationVoucher: {
		Subject: "Reconfirmation voucher required for {client_name}",
		Body: `<p>Dear {agent_name},</p>
<p>The stay for <strong>{client_name}</strong> from <strong>{check_in_date}</strong> to <strong>{check_out_date}</strong> is approaching.</p>
<p>Please send us the reconfirmation voucher for this booking so we can finalise the rooming list.</p>
<p>Kind regards,<br>Reservations Team</p>`,
	},
	domain.ReminderAdvancePayment: {
		Subject: "Advance payment due for {client_name} ({check_in_date})",
		Body: `<p>Dear {agent_name},</p>
<p>This is a reminder that the advance payment for <strong>{client_name}</strong>, staying from <strong>{check_in_date}</strong> to <strong>{check_out_date}</strong>, is now due.</p>
<p>Please arrange the transfer and share the remittance advice with us to keep the reservation confirmed.</p>
<p>Kind regards,<br>Reservations Team</p>`,
	},
}
