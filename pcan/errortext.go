package pcan

import "fmt"

var errorTexts = map[TPCANLanguage]map[TPCANStatus]string{
	LANG_ENGLISH: {
		PCAN_ERROR_OK:           "No error. Success.",
		PCAN_ERROR_XMTFULL:      "Transmit buffer in CAN controller is full.",
		PCAN_ERROR_OVERRUN:      "CAN controller was read too late.",
		PCAN_ERROR_BUSLIGHT:     "Bus error: an error counter reached the 'light' limit.",
		PCAN_ERROR_BUSHEAVY:     "Bus error: an error counter reached the 'heavy' limit.",
		PCAN_ERROR_BUSPASSIVE:   "Bus error: the CAN controller is error passive.",
		PCAN_ERROR_BUSOFF:       "Bus error: the CAN controller is in bus-off state.",
		PCAN_ERROR_ANYBUSERR:    "Bus error: one or more bus errors occurred.",
		PCAN_ERROR_QRCVEMPTY:    "Receive queue is empty.",
		PCAN_ERROR_QOVERRUN:     "Receive queue was read too late.",
		PCAN_ERROR_QXMTFULL:     "Transmit queue is full.",
		PCAN_ERROR_REGTEST:      "Test of the CAN controller hardware registers failed (no hardware found).",
		PCAN_ERROR_NODRIVER:     "Driver not loaded.",
		PCAN_ERROR_HWINUSE:      "Hardware is in use by another Net.",
		PCAN_ERROR_NETINUSE:     "A Client is already connected to the Net.",
		PCAN_ERROR_ILLHW:        "Hardware handle is wrong.",
		PCAN_ERROR_ILLNET:       "Net handle is wrong.",
		PCAN_ERROR_ILLCLIENT:    "Client handle is wrong.",
		PCAN_ERROR_RESOURCE:     "Resource (FIFO, Client, timeout) cannot be created.",
		PCAN_ERROR_ILLPARAMTYPE: "Invalid parameter.",
		PCAN_ERROR_ILLPARAMVAL:  "Invalid parameter value.",
		PCAN_ERROR_UNKNOWN:      "Unknown error.",
		PCAN_ERROR_ILLDATA:      "Invalid data, function, or action.",
		PCAN_ERROR_ILLMODE:      "Driver object state is wrong for the attempted operation.",
		PCAN_ERROR_CAUTION:      "An operation was successfully carried out, however, irregularities were registered.",
		PCAN_ERROR_INITIALIZE:   "Channel is not initialized.",
		PCAN_ERROR_ILLOPERATION: "Invalid operation.",
	},
	LANG_GERMAN: {
		PCAN_ERROR_OK:           "Kein Fehler. Erfolgreich.",
		PCAN_ERROR_XMTFULL:      "Sendepuffer im CAN-Controller ist voll.",
		PCAN_ERROR_OVERRUN:      "CAN-Controller wurde zu spät ausgelesen.",
		PCAN_ERROR_BUSLIGHT:     "Busfehler: Ein Fehlerzähler hat das 'Light'-Limit erreicht.",
		PCAN_ERROR_BUSHEAVY:     "Busfehler: Ein Fehlerzähler hat das 'Heavy'-Limit erreicht.",
		PCAN_ERROR_BUSPASSIVE:   "Busfehler: Der CAN-Controller ist im Zustand 'Error Passive'.",
		PCAN_ERROR_BUSOFF:       "Busfehler: Der CAN-Controller ist im Zustand 'Bus-Off'.",
		PCAN_ERROR_ANYBUSERR:    "Busfehler: Ein oder mehrere Busfehler sind aufgetreten.",
		PCAN_ERROR_QRCVEMPTY:    "Empfangswarteschlange ist leer.",
		PCAN_ERROR_QOVERRUN:     "Empfangswarteschlange wurde zu spät ausgelesen.",
		PCAN_ERROR_QXMTFULL:     "Sendewarteschlange ist voll.",
		PCAN_ERROR_REGTEST:      "Registertest der CAN-Controller-Hardware fehlgeschlagen (keine Hardware gefunden).",
		PCAN_ERROR_NODRIVER:     "Treiber nicht geladen.",
		PCAN_ERROR_HWINUSE:      "Hardware wird von einem anderen Netz verwendet.",
		PCAN_ERROR_NETINUSE:     "Ein Client ist bereits mit dem Netz verbunden.",
		PCAN_ERROR_ILLHW:        "Hardware-Handle ist ungültig.",
		PCAN_ERROR_ILLNET:       "Netz-Handle ist ungültig.",
		PCAN_ERROR_ILLCLIENT:    "Client-Handle ist ungültig.",
		PCAN_ERROR_RESOURCE:     "Ressource (FIFO, Client, Timeout) kann nicht erzeugt werden.",
		PCAN_ERROR_ILLPARAMTYPE: "Ungültiger Parameter.",
		PCAN_ERROR_ILLPARAMVAL:  "Ungültiger Parameterwert.",
		PCAN_ERROR_UNKNOWN:      "Unbekannter Fehler.",
		PCAN_ERROR_ILLDATA:      "Ungültige Daten, Funktion oder Aktion.",
		PCAN_ERROR_ILLMODE:      "Der Zustand des Treiberobjekts erlaubt die Operation nicht.",
		PCAN_ERROR_CAUTION:      "Die Operation wurde ausgeführt, es wurden jedoch Unregelmäßigkeiten festgestellt.",
		PCAN_ERROR_INITIALIZE:   "Kanal ist nicht initialisiert.",
		PCAN_ERROR_ILLOPERATION: "Ungültige Operation.",
	},
	LANG_SPANISH: {
		PCAN_ERROR_OK:           "Sin error. Éxito.",
		PCAN_ERROR_XMTFULL:      "El búfer de transmisión del controlador CAN está lleno.",
		PCAN_ERROR_OVERRUN:      "El controlador CAN fue leído demasiado tarde.",
		PCAN_ERROR_BUSLIGHT:     "Error de bus: un contador de errores alcanzó el límite 'light'.",
		PCAN_ERROR_BUSHEAVY:     "Error de bus: un contador de errores alcanzó el límite 'heavy'.",
		PCAN_ERROR_BUSPASSIVE:   "Error de bus: el controlador CAN está en estado 'error passive'.",
		PCAN_ERROR_BUSOFF:       "Error de bus: el controlador CAN está en estado 'bus-off'.",
		PCAN_ERROR_ANYBUSERR:    "Error de bus: se produjeron uno o más errores de bus.",
		PCAN_ERROR_QRCVEMPTY:    "La cola de recepción está vacía.",
		PCAN_ERROR_QOVERRUN:     "La cola de recepción fue leída demasiado tarde.",
		PCAN_ERROR_QXMTFULL:     "La cola de transmisión está llena.",
		PCAN_ERROR_REGTEST:      "Falló la prueba de los registros del controlador CAN (no se encontró hardware).",
		PCAN_ERROR_NODRIVER:     "Controlador no cargado.",
		PCAN_ERROR_HWINUSE:      "El hardware está siendo usado por otra red.",
		PCAN_ERROR_NETINUSE:     "Un cliente ya está conectado a la red.",
		PCAN_ERROR_ILLHW:        "El handle del hardware no es válido.",
		PCAN_ERROR_ILLNET:       "El handle de la red no es válido.",
		PCAN_ERROR_ILLCLIENT:    "El handle del cliente no es válido.",
		PCAN_ERROR_RESOURCE:     "No se puede crear el recurso (FIFO, cliente, timeout).",
		PCAN_ERROR_ILLPARAMTYPE: "Parámetro no válido.",
		PCAN_ERROR_ILLPARAMVAL:  "Valor de parámetro no válido.",
		PCAN_ERROR_UNKNOWN:      "Error desconocido.",
		PCAN_ERROR_ILLDATA:      "Datos, función o acción no válidos.",
		PCAN_ERROR_ILLMODE:      "El estado del objeto del controlador no permite la operación.",
		PCAN_ERROR_CAUTION:      "La operación se realizó, sin embargo se registraron irregularidades.",
		PCAN_ERROR_INITIALIZE:   "El canal no está inicializado.",
		PCAN_ERROR_ILLOPERATION: "Operación no válida.",
	},
	LANG_FRENCH: {
		PCAN_ERROR_OK:           "Pas d'erreur. Succès.",
		PCAN_ERROR_XMTFULL:      "Le tampon d'émission du contrôleur CAN est plein.",
		PCAN_ERROR_OVERRUN:      "Le contrôleur CAN a été lu trop tard.",
		PCAN_ERROR_BUSLIGHT:     "Erreur de bus : un compteur d'erreurs a atteint la limite 'light'.",
		PCAN_ERROR_BUSHEAVY:     "Erreur de bus : un compteur d'erreurs a atteint la limite 'heavy'.",
		PCAN_ERROR_BUSPASSIVE:   "Erreur de bus : le contrôleur CAN est en état 'error passive'.",
		PCAN_ERROR_BUSOFF:       "Erreur de bus : le contrôleur CAN est en état 'bus-off'.",
		PCAN_ERROR_ANYBUSERR:    "Erreur de bus : une ou plusieurs erreurs de bus sont survenues.",
		PCAN_ERROR_QRCVEMPTY:    "La file de réception est vide.",
		PCAN_ERROR_QOVERRUN:     "La file de réception a été lue trop tard.",
		PCAN_ERROR_QXMTFULL:     "La file d'émission est pleine.",
		PCAN_ERROR_REGTEST:      "Le test des registres du contrôleur CAN a échoué (aucun matériel trouvé).",
		PCAN_ERROR_NODRIVER:     "Pilote non chargé.",
		PCAN_ERROR_HWINUSE:      "Le matériel est utilisé par un autre réseau.",
		PCAN_ERROR_NETINUSE:     "Un client est déjà connecté au réseau.",
		PCAN_ERROR_ILLHW:        "Le handle du matériel est invalide.",
		PCAN_ERROR_ILLNET:       "Le handle du réseau est invalide.",
		PCAN_ERROR_ILLCLIENT:    "Le handle du client est invalide.",
		PCAN_ERROR_RESOURCE:     "La ressource (FIFO, client, timeout) ne peut pas être créée.",
		PCAN_ERROR_ILLPARAMTYPE: "Paramètre invalide.",
		PCAN_ERROR_ILLPARAMVAL:  "Valeur de paramètre invalide.",
		PCAN_ERROR_UNKNOWN:      "Erreur inconnue.",
		PCAN_ERROR_ILLDATA:      "Données, fonction ou action invalides.",
		PCAN_ERROR_ILLMODE:      "L'état de l'objet pilote ne permet pas l'opération.",
		PCAN_ERROR_CAUTION:      "L'opération a été effectuée, mais des irrégularités ont été constatées.",
		PCAN_ERROR_INITIALIZE:   "Le canal n'est pas initialisé.",
		PCAN_ERROR_ILLOPERATION: "Opération invalide.",
	},
	LANG_ITALIAN: {
		PCAN_ERROR_OK:           "Nessun errore. Successo.",
		PCAN_ERROR_XMTFULL:      "Il buffer di trasmissione del controller CAN è pieno.",
		PCAN_ERROR_OVERRUN:      "Il controller CAN è stato letto troppo tardi.",
		PCAN_ERROR_BUSLIGHT:     "Errore di bus: un contatore di errori ha raggiunto il limite 'light'.",
		PCAN_ERROR_BUSHEAVY:     "Errore di bus: un contatore di errori ha raggiunto il limite 'heavy'.",
		PCAN_ERROR_BUSPASSIVE:   "Errore di bus: il controller CAN è in stato 'error passive'.",
		PCAN_ERROR_BUSOFF:       "Errore di bus: il controller CAN è in stato 'bus-off'.",
		PCAN_ERROR_ANYBUSERR:    "Errore di bus: si sono verificati uno o più errori di bus.",
		PCAN_ERROR_QRCVEMPTY:    "La coda di ricezione è vuota.",
		PCAN_ERROR_QOVERRUN:     "La coda di ricezione è stata letta troppo tardi.",
		PCAN_ERROR_QXMTFULL:     "La coda di trasmissione è piena.",
		PCAN_ERROR_REGTEST:      "Test dei registri del controller CAN fallito (nessun hardware trovato).",
		PCAN_ERROR_NODRIVER:     "Driver non caricato.",
		PCAN_ERROR_HWINUSE:      "L'hardware è utilizzato da un'altra rete.",
		PCAN_ERROR_NETINUSE:     "Un client è già connesso alla rete.",
		PCAN_ERROR_ILLHW:        "L'handle dell'hardware non è valido.",
		PCAN_ERROR_ILLNET:       "L'handle della rete non è valido.",
		PCAN_ERROR_ILLCLIENT:    "L'handle del client non è valido.",
		PCAN_ERROR_RESOURCE:     "Impossibile creare la risorsa (FIFO, client, timeout).",
		PCAN_ERROR_ILLPARAMTYPE: "Parametro non valido.",
		PCAN_ERROR_ILLPARAMVAL:  "Valore del parametro non valido.",
		PCAN_ERROR_UNKNOWN:      "Errore sconosciuto.",
		PCAN_ERROR_ILLDATA:      "Dati, funzione o azione non validi.",
		PCAN_ERROR_ILLMODE:      "Lo stato dell'oggetto driver non consente l'operazione.",
		PCAN_ERROR_CAUTION:      "L'operazione è stata eseguita, tuttavia sono state registrate irregolarità.",
		PCAN_ERROR_INITIALIZE:   "Il canale non è inizializzato.",
		PCAN_ERROR_ILLOPERATION: "Operazione non valida.",
	},
}

// errorText looks up the text of a status, unsupported languages fall back to English.
// Unknown codes give "Undefined (0x..)" and PCAN_ERROR_ILLPARAMVAL.
func errorText(status TPCANStatus, language TPCANLanguage) (TPCANStatus, string) {
	texts, ok := errorTexts[language]
	if !ok {
		texts = errorTexts[LANG_ENGLISH]
	}
	if s, ok := texts[status]; ok {
		return PCAN_ERROR_OK, s
	}
	return PCAN_ERROR_ILLPARAMVAL, fmt.Sprintf("Undefined (0x%x)", uint32(status))
}
