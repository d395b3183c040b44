package reminder

import "errors"

var ErrRecipientRequired = errors.New("recipient email is required")
