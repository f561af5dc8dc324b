package cmd

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/morgadow/gopcanbasic/pcan"
	"github.com/spf13/cobra"
)

var (
	monitorBitrate string
	monitorFD      string
)

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().StringVarP(&monitorBitrate, "bitrate", "b", "500k", "bit rate of a classic CAN channel, ex. 250k or 0x011C")
	monitorCmd.Flags().StringVar(&monitorFD, "fd", "", "bit rate string of a CAN FD channel, ex. \"f_clock_mhz=80, nom_brp=2, ...\"")
}

var monitorCmd = &cobra.Command{
	Use:   "monitor <handle>",
	Short: "Print the frames received on a channel",
	Long: `monitor opens a channel, ex. PCAN_USBBUS1 or 0x51, and prints every frame it receives
until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handle, ok := pcan.ParseHandle(args[0])
		if !ok {
			return fmt.Errorf("unknown channel %q", args[0])
		}
		fd := monitorFD != ""

		c := pcan.Default()
		var status pcan.TPCANStatus
		if fd {
			status = c.InitializeFD(handle, pcan.TPCANBitrateFD(monitorFD))
		} else {
			baud, ok := pcan.ParseBaudrate(monitorBitrate)
			if !ok {
				return fmt.Errorf("unknown bit rate %q", monitorBitrate)
			}
			status = c.Initialize(handle, baud, pcan.PCAN_DEFAULT_HW_TYPE, 0, 0)
		}
		switch status {
		case pcan.PCAN_ERROR_OK:
		case pcan.PCAN_ERROR_CAUTION:
			log.Printf("%s is already in use with another bit rate", pcan.HandleName(handle))
		default:
			_, text := c.GetErrorText(status, pcan.LANG_ENGLISH)
			return fmt.Errorf("failed to open %s: %s", pcan.HandleName(handle), text)
		}
		defer c.Uninitialize(handle)

		out := cmd.OutOrStdout()
		d := pcan.NewRcvEventDispatcher(c, func(h pcan.TPCANHandle) {
			if fd {
				drainFD(out, c, h)
			} else {
				drain(out, c, h)
			}
		})
		if _, err := d.Register(handle); err != nil {
			return err
		}
		log.Printf("monitoring %s, press ctrl-c to quit", pcan.HandleName(handle))

		<-cmd.Context().Done()
		return d.Stop()
	},
}

func drain(w io.Writer, c *pcan.Core, handle pcan.TPCANHandle) {
	for {
		status, msg, ts := c.Read(handle)
		if status != pcan.PCAN_ERROR_OK {
			return
		}
		n := min(int(msg.DLC), len(msg.Data))
		fmt.Fprintln(w, frameString(ts.Microseconds(), msg.ID, msg.MsgType, msg.DLC, msg.Data[:n]))
	}
}

func drainFD(w io.Writer, c *pcan.Core, handle pcan.TPCANHandle) {
	for {
		status, msg, ts := c.ReadFD(handle)
		if status != pcan.PCAN_ERROR_OK {
			return
		}
		fmt.Fprintln(w, frameString(uint64(ts), msg.ID, msg.MsgType, msg.DLC, msg.Data[:msg.Len()]))
	}
}

func frameString(us uint64, id pcan.TPCANMsgID, msgType pcan.TPCANMessageType, dlc uint8, data []byte) string {
	var out strings.Builder

	fmt.Fprintf(&out, "%6d.%06d || ", us/1000000, us%1000000)

	switch {
	case msgType&pcan.PCAN_MESSAGE_STATUS != 0:
		out.WriteString(yellow("status") + "     || ")
	case msgType&pcan.PCAN_MESSAGE_ERRFRAME != 0:
		out.WriteString(red("error") + "      || ")
	case msgType&pcan.PCAN_MESSAGE_EXTENDED != 0:
		out.WriteString(green("0x%08X", id) + " || ")
	default:
		out.WriteString(green("0x%03X", id) + "      || ")
	}

	var flags []string
	if msgType&pcan.PCAN_MESSAGE_FD != 0 {
		flags = append(flags, "fd")
	}
	if msgType&pcan.PCAN_MESSAGE_BRS != 0 {
		flags = append(flags, "brs")
	}
	if msgType&pcan.PCAN_MESSAGE_RTR != 0 {
		flags = append(flags, "rtr")
	}
	if msgType&pcan.PCAN_MESSAGE_ECHO != 0 {
		flags = append(flags, "echo")
	}
	fmt.Fprintf(&out, "%2d || %-8s || ", dlc, strings.Join(flags, ","))

	for i, b := range data {
		if i > 0 {
			out.WriteString(" ")
		}
		fmt.Fprintf(&out, "%02X", b)
	}
	return out.String()
}
